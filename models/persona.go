package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Persona representa un registro de la tabla de personas
type Persona struct {
	ID                  int    `json:"id" db:"id"`
	Cedula              string `json:"cedula" db:"cedula"`
	Nombre              string `json:"nombre" db:"nombre"`
	Apellido            string `json:"apellido" db:"apellido"`
	Sexo                string `json:"sexo" db:"sexo"`
	FechaNacimiento     string `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	Edad                int    `json:"edad" db:"edad"`
	Ocupacion           string `json:"ocupacion" db:"ocupacion"`
	Empresa             string `json:"empresa" db:"empresa"`
	TipoContrato        string `json:"tipo_contrato" db:"tipo_contrato"`
	EsAsegurado         string `json:"es_asegurado" db:"es_asegurado"`
	TipoSangre          string `json:"tipo_sangre" db:"tipo_sangre"`
	Direccion           string `json:"direccion" db:"direccion"`
	TelefonoResidencial string `json:"telefono_residencial" db:"telefono_residencial"`
	TelefonoCelular     string `json:"telefono_celular" db:"telefono_celular"`
}

// Nombres de columna, en el orden del archivo CSV
const (
	CampoID                  = "id"
	CampoCedula              = "cedula"
	CampoNombre              = "nombre"
	CampoApellido            = "apellido"
	CampoSexo                = "sexo"
	CampoFechaNacimiento     = "fecha_nacimiento"
	CampoEdad                = "edad"
	CampoOcupacion           = "ocupacion"
	CampoEmpresa             = "empresa"
	CampoTipoContrato        = "tipo_contrato"
	CampoEsAsegurado         = "es_asegurado"
	CampoTipoSangre          = "tipo_sangre"
	CampoDireccion           = "direccion"
	CampoTelefonoResidencial = "telefono_residencial"
	CampoTelefonoCelular     = "telefono_celular"
)

// CamposCSV es el encabezado fijo del archivo de registros
var CamposCSV = []string{
	CampoID, CampoCedula, CampoNombre, CampoApellido, CampoSexo, CampoFechaNacimiento, CampoEdad,
	CampoOcupacion, CampoEmpresa, CampoTipoContrato, CampoEsAsegurado, CampoTipoSangre,
	CampoDireccion, CampoTelefonoResidencial, CampoTelefonoCelular,
}

// CamposEditables son los campos que el usuario puede capturar o modificar.
// id lo asigna el almacén y edad se deriva de fecha_nacimiento.
var CamposEditables = []string{
	CampoCedula, CampoNombre, CampoApellido, CampoSexo, CampoFechaNacimiento,
	CampoOcupacion, CampoEmpresa, CampoTipoContrato, CampoEsAsegurado, CampoTipoSangre,
	CampoDireccion, CampoTelefonoResidencial, CampoTelefonoCelular,
}

// Etiqueta devuelve el texto que se muestra al pedir un campo
func Etiqueta(campo string) string {
	switch campo {
	case CampoCedula:
		return "Cédula"
	case CampoOcupacion:
		return "Ocupación"
	case CampoEsAsegurado:
		return "¿Es asegurado? (si/no)"
	case CampoFechaNacimiento:
		return "Fecha de nacimiento (YYYY-MM-DD)"
	case CampoDireccion:
		return "Dirección"
	case CampoTelefonoResidencial:
		return "Teléfono residencial"
	case CampoTelefonoCelular:
		return "Teléfono celular"
	}
	texto := strings.ReplaceAll(campo, "_", " ")
	return strings.ToUpper(texto[:1]) + texto[1:]
}

// campoTexto devuelve un puntero al campo de texto con ese nombre
func (p *Persona) campoTexto(campo string) *string {
	switch campo {
	case CampoCedula:
		return &p.Cedula
	case CampoNombre:
		return &p.Nombre
	case CampoApellido:
		return &p.Apellido
	case CampoSexo:
		return &p.Sexo
	case CampoFechaNacimiento:
		return &p.FechaNacimiento
	case CampoOcupacion:
		return &p.Ocupacion
	case CampoEmpresa:
		return &p.Empresa
	case CampoTipoContrato:
		return &p.TipoContrato
	case CampoEsAsegurado:
		return &p.EsAsegurado
	case CampoTipoSangre:
		return &p.TipoSangre
	case CampoDireccion:
		return &p.Direccion
	case CampoTelefonoResidencial:
		return &p.TelefonoResidencial
	case CampoTelefonoCelular:
		return &p.TelefonoCelular
	}
	return nil
}

// Valor devuelve el valor de un campo como texto
func (p Persona) Valor(campo string) string {
	switch campo {
	case CampoID:
		return strconv.Itoa(p.ID)
	case CampoEdad:
		return strconv.Itoa(p.Edad)
	}
	if v := p.campoTexto(campo); v != nil {
		return *v
	}
	return ""
}

// Asignar cambia el valor de un campo editable
func (p *Persona) Asignar(campo, valor string) error {
	v := p.campoTexto(campo)
	if v == nil {
		return fmt.Errorf("campo no editable: %s", campo)
	}
	*v = valor
	return nil
}

// Fila devuelve los valores en el orden de CamposCSV
func (p Persona) Fila() []string {
	fila := make([]string, len(CamposCSV))
	for i, campo := range CamposCSV {
		fila[i] = p.Valor(campo)
	}
	return fila
}

// PersonaDesdeFila construye una persona a partir de una fila con el
// encabezado dado. Un id o edad no numéricos quedan en cero.
func PersonaDesdeFila(encabezado, fila []string) Persona {
	var p Persona
	for i, campo := range encabezado {
		if i >= len(fila) {
			break
		}
		valor := fila[i]
		switch campo {
		case CampoID:
			p.ID, _ = strconv.Atoi(strings.TrimSpace(valor))
		case CampoEdad:
			p.Edad, _ = strconv.Atoi(strings.TrimSpace(valor))
		default:
			_ = p.Asignar(campo, valor)
		}
	}
	return p
}

// Validar comprueba que la fecha de nacimiento sea válida
func (p Persona) Validar() error {
	_, err := CalcularEdad(p.FechaNacimiento, Hoy())
	return err
}

// CambiosPersona representa una actualización parcial. Un campo nil no se
// modifica. Edad solo la asigna la capa de servicio.
type CambiosPersona struct {
	Valores map[string]string `json:"valores"`
	Edad    *int              `json:"-"`
}

// NuevosCambios crea una actualización parcial vacía
func NuevosCambios() CambiosPersona {
	return CambiosPersona{Valores: map[string]string{}}
}

// Poner registra el nuevo valor de un campo. Un valor en blanco se ignora.
func (c *CambiosPersona) Poner(campo, valor string) {
	if strings.TrimSpace(valor) == "" {
		return
	}
	if c.Valores == nil {
		c.Valores = map[string]string{}
	}
	c.Valores[campo] = valor
}

// Quitar descarta el cambio de un campo
func (c *CambiosPersona) Quitar(campo string) {
	delete(c.Valores, campo)
}

// Valor devuelve el nuevo valor de un campo y si fue cambiado
func (c CambiosPersona) Valor(campo string) (string, bool) {
	v, ok := c.Valores[campo]
	return v, ok
}

// Vacio indica que no hay nada que actualizar
func (c CambiosPersona) Vacio() bool {
	return len(c.Valores) == 0 && c.Edad == nil
}

// Columnas devuelve los campos cambiados en el orden de CamposCSV
func (c CambiosPersona) Columnas() []string {
	var columnas []string
	for _, campo := range CamposCSV {
		if campo == CampoEdad {
			if c.Edad != nil {
				columnas = append(columnas, campo)
			}
			continue
		}
		if _, ok := c.Valores[campo]; ok {
			columnas = append(columnas, campo)
		}
	}
	return columnas
}

// Validar rechaza cambios sobre campos que no son editables
func (c CambiosPersona) Validar() error {
	for campo := range c.Valores {
		if !esEditable(campo) {
			return fmt.Errorf("%w: el campo %q no es editable", ErrCampoNoEditable, campo)
		}
	}
	return nil
}

// Aplicar devuelve una copia de la persona con los cambios aplicados
func (p Persona) Aplicar(c CambiosPersona) Persona {
	for campo, valor := range c.Valores {
		_ = p.Asignar(campo, valor)
	}
	if c.Edad != nil {
		p.Edad = *c.Edad
	}
	return p
}

func esEditable(campo string) bool {
	for _, e := range CamposEditables {
		if e == campo {
			return true
		}
	}
	return false
}
