package models

import "errors"

// Tipos de error del registro. Se comprueban con errors.Is.
var (
	// ErrArchivoNoEncontrado indica que la ruta de origen no existe
	ErrArchivoNoEncontrado = errors.New("archivo no encontrado")
	// ErrFechaInvalida indica una fecha de nacimiento que no se pudo interpretar
	ErrFechaInvalida = errors.New("fecha de nacimiento inválida")
	// ErrFormato indica un documento de origen mal formado
	ErrFormato = errors.New("formato inválido")
	// ErrAlmacen envuelve fallas de E/S o del servicio remoto
	ErrAlmacen = errors.New("error del almacén")
	// ErrNoEncontrado indica que ningún registro tiene el id pedido
	ErrNoEncontrado = errors.New("registro no encontrado")
	// ErrSinConfirmacion indica que el almacén no devolvió la fila insertada
	ErrSinConfirmacion = errors.New("el almacén no confirmó el registro insertado")
	ErrCampoNoEditable = errors.New("campo no editable")
)
