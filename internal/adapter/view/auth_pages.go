package view

import (
	"context"
	"fmt"
	"io"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"
)

func (p *Pages) Landing(w io.Writer) error {
	if err := p.guard(usecase.AreaLanding); err != nil {
		return err
	}
	fmt.Fprintln(w, "Welcome to Our Marketplace")
	fmt.Fprintln(w, "Join our community of buyers and sellers. Discover unique products or start selling today.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  register user     create a buyer account")
	fmt.Fprintln(w, "  register seller   create a seller account")
	fmt.Fprintln(w, "  login             already have an account?")
	return nil
}

func (p *Pages) Login(ctx context.Context, w io.Writer, email, password string) error {
	if err := p.guard(usecase.AreaLogin); err != nil {
		return err
	}
	identity, err := p.sessions.SignIn(ctx, email, password)
	if err != nil {
		if !writeFieldErrors(w, err) {
			fmt.Fprintln(w, "Invalid Credentials")
		}
		return err
	}
	fmt.Fprintf(w, "Signed in as %s (%s)\n", identity.DisplayName(), identity.Role)
	return nil
}

func (p *Pages) Register(ctx context.Context, w io.Writer, role entity.Role, input repository.Registration) error {
	if err := p.guard(usecase.AreaRegister); err != nil {
		return err
	}
	if _, err := p.sessions.Register(ctx, role, input); err != nil {
		writeFieldErrors(w, err)
		return err
	}
	fmt.Fprintln(w, "You can now log in.")
	return nil
}

// Logout is reachable from any signed-in area.
func (p *Pages) Logout(ctx context.Context, w io.Writer) error {
	err := p.sessions.Logout(ctx)
	fmt.Fprintln(w, "Signed out.")
	return err
}
