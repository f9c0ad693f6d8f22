package bootstrap

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
)

func InitFirebase(ctx context.Context, databaseURL string) (*db.Client, *auth.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL})
	if err != nil {
		return nil, nil, err
	}
	database, err := app.Database(ctx)
	if err != nil {
		return nil, nil, err
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, err
	}
	return database, authClient, nil
}
