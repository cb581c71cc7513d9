package usecase

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/domain/paytoken"
)

type PayTokenUseCaseCfg struct {
	Repo         paytoken.Repo
	SettingsRepo marketplace.SettingsRepo
}

type impl struct {
	repo         paytoken.Repo
	settingsRepo marketplace.SettingsRepo
}

func New(cfg *PayTokenUseCaseCfg) paytoken.UseCase {
	return &impl{
		repo:         cfg.Repo,
		settingsRepo: cfg.SettingsRepo,
	}
}

func (im *impl) IsEnabled(c bCtx.Ctx, address domain.Address) (bool, error) {
	_, err := im.repo.FindOne(c, address)
	if err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (im *impl) FindOne(c bCtx.Ctx, address domain.Address) (*paytoken.PayToken, error) {
	return im.repo.FindOne(c, address)
}

func (im *impl) FindAll(c bCtx.Ctx) ([]paytoken.PayToken, error) {
	return im.repo.FindAll(c)
}

func (im *impl) Add(c bCtx.Ctx, caller domain.Address, token *paytoken.PayToken) error {
	if err := im.requireOwner(c, caller); err != nil {
		return err
	}
	if _, err := im.repo.FindOne(c, token.Address); err == nil {
		return domain.ErrAlreadyExists
	} else if err != domain.ErrNotFound {
		return err
	}
	return im.repo.Insert(c, token)
}

func (im *impl) Remove(c bCtx.Ctx, caller, address domain.Address) error {
	if err := im.requireOwner(c, caller); err != nil {
		return err
	}
	return im.repo.Remove(c, address)
}

func (im *impl) requireOwner(c bCtx.Ctx, caller domain.Address) error {
	settings, err := im.settingsRepo.Get(c)
	if err != nil {
		return err
	}
	if !settings.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	return nil
}
