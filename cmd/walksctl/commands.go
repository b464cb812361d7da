package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"pet-walks-client/internal/app"
	"pet-walks-client/internal/domain/session"
	"pet-walks-client/internal/platform/logger"
	"pet-walks-client/internal/ports/auth"
	"pet-walks-client/internal/tui"
	"pet-walks-client/internal/validation"

	tea "github.com/charmbracelet/bubbletea"
)

type cli struct {
	app *app.App
	in  *bufio.Reader
	out io.Writer
	log logger.Logger
}

func (c *cli) prompt(label string) string {
	fmt.Fprintf(c.out, "%s: ", label)
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (c *cli) orPrompt(v, label string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return c.prompt(label)
}

// requireSession restaura la sesión guardada. Sin sesión válida no hay comando.
func (c *cli) requireSession(ctx context.Context) (session.State, error) {
	st := c.app.Session.CheckSession(ctx)
	if !st.Authenticated() {
		return st, app.ErrNotAuthenticated
	}
	return st, nil
}

func (c *cli) status(ctx context.Context) error {
	st := c.app.Session.CheckSession(ctx)
	fmt.Fprintln(c.out, st.Status)
	return nil
}

func (c *cli) whoami(ctx context.Context) error {
	st, err := c.requireSession(ctx)
	if err != nil {
		return err
	}
	u := st.User
	fmt.Fprintf(c.out, "%s <%s>\nrol: %s\nteléfono: %s\n", u.Name, u.Email, u.DisplayRole(), validation.FormatPhone(u.Phone))
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "correo")
	password := fs.String("password", "", "contraseña (si falta se pide)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e := c.orPrompt(*email, "Correo")
	p := c.orPrompt(*password, "Contraseña")
	if err := c.app.Login(ctx, e, p); err != nil {
		return err
	}

	u := c.app.Session.State().User
	fmt.Fprintf(c.out, "Hola, %s (%s)\n", u.Name, u.DisplayRole())
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	c.app.Logout(ctx)
	fmt.Fprintln(c.out, "Sesión cerrada")
	return nil
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "nombre")
	email := fs.String("email", "", "correo")
	phone := fs.String("phone", "", "teléfono (10 dígitos)")
	password := fs.String("password", "", "contraseña")
	role := fs.String("role", "cliente", "cliente | paseador")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roleID, err := parseRole(*role)
	if err != nil {
		return err
	}

	pw := c.orPrompt(*password, "Contraseña")
	confirm := pw
	if *password == "" {
		confirm = c.prompt("Repite la contraseña")
	}

	u, err := c.app.Register(ctx, validation.RegisterForm{
		Name:            c.orPrompt(*name, "Nombre"),
		Email:           c.orPrompt(*email, "Correo"),
		Phone:           c.orPrompt(*phone, "Teléfono"),
		Password:        pw,
		ConfirmPassword: confirm,
	}, roleID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Cuenta creada: %s (%s). Ya puedes iniciar sesión.\n", u.Email, u.DisplayRole())
	return nil
}

func parseRole(s string) (auth.RoleID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cliente", "client":
		return auth.RoleClient, nil
	case "paseador", "walker":
		return auth.RoleWalker, nil
	default:
		return 0, fmt.Errorf("rol inválido %q: usa cliente o paseador", s)
	}
}

func (c *cli) forgot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot", flag.ContinueOnError)
	email := fs.String("email", "", "correo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.app.ForgotPassword(ctx, c.orPrompt(*email, "Correo"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, msg)
	return nil
}

func (c *cli) reset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	email := fs.String("email", "", "correo")
	code := fs.String("code", "", "código recibido")
	password := fs.String("password", "", "contraseña nueva")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e := c.orPrompt(*email, "Correo")
	k := c.orPrompt(*code, "Código")
	pw := c.orPrompt(*password, "Contraseña nueva")
	confirm := pw
	if *password == "" {
		confirm = c.prompt("Repite la contraseña")
	}

	if err := c.app.ResetPassword(ctx, e, k, pw, confirm); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Contraseña actualizada. Sesión iniciada.")
	return nil
}

func (c *cli) pets(ctx context.Context) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}
	items, err := c.app.ListPets(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "No tienes mascotas registradas")
		return nil
	}
	for _, p := range items {
		fmt.Fprintf(c.out, "%s\t%s\t%s\t%d años\t%s\n", p.ID, p.Name, p.Breed, p.Age, p.Zone)
	}
	return nil
}

func (c *cli) createPet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pet create", flag.ContinueOnError)
	breed := fs.String("breed", "", "raza")
	zone := fs.String("zone", "", "norte | centro | sur")
	name := fs.String("name", "", "nombre")
	age := fs.String("age", "", "edad 0-20")
	description := fs.String("description", "", "descripción")
	comments := fs.String("comments", "", "comentarios")
	medical := fs.String("medical", "", "condición médica")
	photo := fs.String("photo", "", "ruta a foto .jpg/.png")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	if *breed == "" {
		return c.createPetInteractive(ctx)
	}

	// Modo flags: mismos pasos y validaciones que el wizard.
	steps := []func() validation.FieldErrors{
		func() validation.FieldErrors { return c.app.SetBreed(*breed) },
		func() validation.FieldErrors { return c.app.SetZone(*zone) },
		func() validation.FieldErrors { return c.app.SetProfile(*name, *age) },
		func() validation.FieldErrors { return c.app.SetDetails(*description, *comments, *medical) },
		func() validation.FieldErrors { return c.app.SetPhoto(*photo) },
	}
	for _, step := range steps {
		if err := step().Err(); err != nil {
			return err
		}
	}

	p, err := c.app.SubmitDraft(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Mascota registrada: %s (%s)\n", p.Name, p.ID)
	return nil
}

func (c *cli) createPetInteractive(ctx context.Context) error {
	final, err := tea.NewProgram(tui.NewWizard(ctx, c.app)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(tui.WizardModel)
	if !ok {
		return errors.New("unexpected wizard state")
	}
	if m.Cancelled() {
		fmt.Fprintln(c.out, "Alta cancelada")
		return nil
	}
	if p, ok := m.Pet(); ok {
		fmt.Fprintf(c.out, "Mascota registrada: %s (%s)\n", p.Name, p.ID)
	}
	return nil
}
