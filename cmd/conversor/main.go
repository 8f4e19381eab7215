package main

import (
	"fmt"
	"os"

	"github.com/lizet96/registro-personas/config"
	"github.com/lizet96/registro-personas/consola"
	"github.com/lizet96/registro-personas/conversor"
	"github.com/lizet96/registro-personas/logger"
)

func main() {
	cfg, err := config.Cargar()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Nuevo(cfg.LogLevel, cfg.Environment, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	menu := consola.NuevoMenuConversor(consola.NuevaTerminal(os.Stdin, os.Stdout), conversor.Nuevo(log))
	if err := menu.Ejecutar(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	}
}
