package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutriportal/internal/client/api"
)

func (a *App) Register(ctx context.Context) error {
	var (
		r   api.RegisterRequest
		err error
	)

	if r.Name, err = GetSimpleText(a.reader, "Nome completo", a.out); err != nil {
		return a.fail(err)
	}
	if r.CRN, err = GetSimpleText(a.reader, "CRN (6 dígitos)", a.out); err != nil {
		return a.fail(err)
	}
	if r.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return a.fail(err)
	}

	senha, err := GetPassword("Senha", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer wipe(senha)
	r.Senha = string(senha)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	msg, err := a.api.Register(ctx, r)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.fail(err)
	}

	senha, err := GetPassword("Senha", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer wipe(senha)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	acc, err := a.api.Login(ctx, email, senha)
	if err != nil {
		return a.fail(err)
	}

	a.userName = acc.Email
	fmt.Fprintf(a.out, "Bem-vindo(a), %s\n", acc.Name)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	acc, err := a.api.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			a.userName = ""
		}
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "id:    %s\nnome:  %s\nemail: %s\n", acc.ID, acc.Name, acc.Email)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "server ok")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(); err != nil {
		return a.fail(err)
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Sessão encerrada")
	return nil
}

func (a *App) fail(err error) error {
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}
