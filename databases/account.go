package databases

import (
	"context"
	"errors"

	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

const accountCollection = "accounts"

// AccountDatabase contains the methods to use with the account collection
type AccountDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

type accountDatabase struct {
	db DatabaseHelper
}

// NewAccountDatabase initializes a new instance of account database with the
// provided db connection
func NewAccountDatabase(db DatabaseHelper) AccountDatabase {
	return &accountDatabase{
		db: db,
	}
}

func (a *accountDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Account, error) {
	account := &models.Account{}
	err := a.db.Collection(accountCollection).FindOne(ctx, filter).Decode(&account)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (a *accountDatabase) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	return a.FindOne(ctx, map[string]interface{}{"account.email": email})
}
