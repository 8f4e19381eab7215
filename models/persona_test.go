package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personaDePrueba() Persona {
	return Persona{
		ID:                  7,
		Cedula:              "001-1234567-8",
		Nombre:              "Ana",
		Apellido:            "Pérez",
		Sexo:                "F",
		FechaNacimiento:     "1990-05-20",
		Edad:                36,
		Ocupacion:           "Ingeniera",
		Empresa:             "Acme",
		TipoContrato:        "fijo",
		EsAsegurado:         "si",
		TipoSangre:          "O+",
		Direccion:           "Calle 1, Santo Domingo",
		TelefonoResidencial: "809-555-0000",
		TelefonoCelular:     "829-555-1111",
	}
}

func TestFilaYPersonaDesdeFila(t *testing.T) {
	p := personaDePrueba()
	fila := p.Fila()

	require.Len(t, fila, len(CamposCSV))
	assert.Equal(t, "7", fila[0])
	assert.Equal(t, "36", fila[6])
	assert.Equal(t, p, PersonaDesdeFila(CamposCSV, fila))
}

func TestPersonaDesdeFila_ValoresNoNumericos(t *testing.T) {
	p := PersonaDesdeFila([]string{"nombre", "id", "edad"}, []string{"Luis", "abc", ""})

	assert.Equal(t, "Luis", p.Nombre)
	assert.Zero(t, p.ID)
	assert.Zero(t, p.Edad)
}

func TestPersonaDesdeFila_FilaCorta(t *testing.T) {
	p := PersonaDesdeFila(CamposCSV, []string{"3", "123"})

	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "123", p.Cedula)
	assert.Empty(t, p.Nombre)
}

func TestAsignar_CampoNoEditable(t *testing.T) {
	var p Persona
	assert.Error(t, p.Asignar(CampoID, "5"))
	assert.Error(t, p.Asignar(CampoEdad, "5"))
	assert.Error(t, p.Asignar("desconocido", "x"))
	assert.NoError(t, p.Asignar(CampoTipoSangre, "AB-"))
	assert.Equal(t, "AB-", p.TipoSangre)
}

func TestCambiosPersona(t *testing.T) {
	c := NuevosCambios()
	assert.True(t, c.Vacio())

	c.Poner(CampoNombre, "")
	c.Poner(CampoApellido, "   ")
	assert.True(t, c.Vacio(), "los valores en blanco no cuentan como cambios")

	c.Poner(CampoTelefonoCelular, "829-000-0000")
	c.Poner(CampoNombre, "María")
	edad := 20
	c.Edad = &edad

	assert.False(t, c.Vacio())
	assert.Equal(t, []string{CampoNombre, CampoEdad, CampoTelefonoCelular}, c.Columnas())

	p := personaDePrueba().Aplicar(c)
	assert.Equal(t, "María", p.Nombre)
	assert.Equal(t, "829-000-0000", p.TelefonoCelular)
	assert.Equal(t, 20, p.Edad)
	assert.Equal(t, "Pérez", p.Apellido)
	assert.Equal(t, 7, p.ID)

	c.Quitar(CampoNombre)
	_, ok := c.Valor(CampoNombre)
	assert.False(t, ok)
}

func TestCambiosPersona_Validar(t *testing.T) {
	c := NuevosCambios()
	c.Poner(CampoNombre, "x")
	assert.NoError(t, c.Validar())

	c.Poner(CampoEdad, "99")
	assert.ErrorIs(t, c.Validar(), ErrCampoNoEditable)

	c = NuevosCambios()
	c.Poner(CampoID, "99")
	assert.ErrorIs(t, c.Validar(), ErrCampoNoEditable)
}

func TestEtiqueta(t *testing.T) {
	assert.Equal(t, "Cédula", Etiqueta(CampoCedula))
	assert.Equal(t, "Nombre", Etiqueta(CampoNombre))
	assert.Equal(t, "Tipo contrato", Etiqueta(CampoTipoContrato))
	assert.Equal(t, "Fecha de nacimiento (YYYY-MM-DD)", Etiqueta(CampoFechaNacimiento))
}
