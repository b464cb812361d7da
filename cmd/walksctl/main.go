package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pet-walks-client/internal/app"
	"pet-walks-client/internal/config"
	"pet-walks-client/internal/platform/logger"
)

const usage = `walksctl: cliente de paseos de mascotas

Uso:
  walksctl status                 verifica la sesión guardada
  walksctl whoami                 muestra el usuario de la sesión
  walksctl login [-email E]       inicia sesión (pide la contraseña)
  walksctl logout                 cierra la sesión
  walksctl register [flags]       crea una cuenta (cliente o paseador)
  walksctl forgot -email E        pide un código de recuperación
  walksctl reset [flags]          restablece la contraseña con el código
  walksctl pets                   lista tus mascotas
  walksctl pet create [flags]     alta de mascota (interactivo sin flags)
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprint(stdout, usage)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "walksctl",
	})

	a, err := app.Open(cfg, log)
	if err != nil {
		log.Error("open app", map[string]any{"error": err})
		fmt.Fprintln(os.Stderr, "No se pudo iniciar el cliente")
		return 1
	}
	defer a.Close()

	c := &cli{
		app: a,
		in:  bufio.NewReader(stdin),
		out: stdout,
		log: log,
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "status":
		err = c.status(ctx)
	case "whoami":
		err = c.whoami(ctx)
	case "login":
		err = c.login(ctx, rest)
	case "logout":
		err = c.logout(ctx)
	case "register":
		err = c.register(ctx, rest)
	case "forgot":
		err = c.forgot(ctx, rest)
	case "reset":
		err = c.reset(ctx, rest)
	case "pets":
		err = c.pets(ctx)
	case "pet":
		if len(rest) == 0 || rest[0] != "create" {
			fmt.Fprint(stdout, usage)
			return 2
		}
		err = c.createPet(ctx, rest[1:])
	default:
		fmt.Fprintf(stdout, "comando desconocido %q\n\n%s", cmd, usage)
		return 2
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
		return 1
	}
	return 0
}
