package app

import "passphrasex/internal/domain"

// App is what the CLI commands operate on.
type App struct {
	Accounts    domain.AccountService
	Credentials domain.CredentialService
}

func New(accounts domain.AccountService, credentials domain.CredentialService) *App {
	return &App{
		Accounts:    accounts,
		Credentials: credentials,
	}
}
