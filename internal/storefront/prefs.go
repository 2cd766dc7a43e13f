package storefront

import (
	"context"
	"errors"

	"Audilog/pkg/kv"
)

const (
	languageKey     = "localCommerce_language"
	defaultLanguage = "en"
)

var ErrBadLanguage = errors.New("unsupported language code")

var allowedLanguages = map[string]struct{}{
	"en": {},
	"ta": {},
	"hi": {},
}

// Prefs stores the UI language preference.
type Prefs struct {
	kv kv.Store
}

func NewPrefs(store kv.Store) *Prefs {
	return &Prefs{kv: store}
}

func (p *Prefs) Language(ctx context.Context) (string, error) {
	code, ok, err := p.kv.Get(ctx, languageKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return defaultLanguage, nil
	}
	return code, nil
}

func (p *Prefs) SetLanguage(ctx context.Context, code string) error {
	if _, ok := allowedLanguages[code]; !ok {
		return ErrBadLanguage
	}
	return p.kv.Set(ctx, languageKey, code)
}
