package widgets

import (
	"log/slog"

	"github.com/vango-dev/uishka/internal/config"
	"github.com/vango-dev/uishka/pkg/component"
)

// Kind names.
const (
	ButtonKind = "Button"
	CardKind   = "Card"
)

// Library holds the widget kinds defined on one Env.
type Library struct {
	env     *component.Env
	cfg     *config.Config
	buttons *component.Kind[*Button]
	cards   *component.Kind[*Card]
}

// Register defines the Button and Card kinds on env. A nil cfg uses defaults.
func Register(env *component.Env, cfg *config.Config) (*Library, error) {
	if cfg == nil {
		cfg = config.New()
	}
	buttons, err := component.Define[*Button](env, ButtonKind)
	if err != nil {
		return nil, err
	}
	cards, err := component.Define[*Card](env, CardKind)
	if err != nil {
		return nil, err
	}
	return &Library{
		env:     env,
		cfg:     cfg,
		buttons: buttons,
		cards:   cards,
	}, nil
}

// Buttons returns the Button kind.
func (l *Library) Buttons() *component.Kind[*Button] {
	return l.buttons
}

// Cards returns the Card kind.
func (l *Library) Cards() *component.Kind[*Card] {
	return l.cards
}

// MountResult counts the instances created by Mount.
type MountResult struct {
	Buttons int `json:"buttons"`
	Cards   int `json:"cards"`
}

// Mount binds a Button to every button-class element and a Card to every
// card-class element that is not bound yet. Buttons are initialized.
func (l *Library) Mount() (MountResult, error) {
	var res MountResult
	doc := l.env.Document()

	nodes, err := doc.QuerySelectorAll("." + l.cfg.ButtonClass())
	if err != nil {
		return res, err
	}
	for _, n := range nodes {
		if _, ok := l.buttons.Get(n); ok {
			continue
		}
		btn, err := l.NewButton(n)
		if err != nil {
			return res, err
		}
		btn.Init()
		res.Buttons++
	}

	nodes, err = doc.QuerySelectorAll("." + l.cfg.CardClass())
	if err != nil {
		return res, err
	}
	for _, n := range nodes {
		if _, ok := l.cards.Get(n); ok {
			continue
		}
		if _, err := l.NewCard(n); err != nil {
			return res, err
		}
		res.Cards++
	}

	l.env.Logger().Info("widgets mounted",
		slog.Int("buttons", res.Buttons),
		slog.Int("cards", res.Cards),
	)
	return res, nil
}
