// Package widgets provides the Button and Card components.
//
// Register defines both kinds on an Env; Mount then binds every element
// carrying the configured classes, the way a page initializer would on load:
//
//	lib, err := widgets.Register(env, cfg)
//	if err != nil {
//	    return err
//	}
//	if _, err := lib.Mount(); err != nil {
//	    return err
//	}
//
//	btn, _ := lib.Buttons().Get(node)
//	btn.Loading()
//	// ... request finished
//	btn.Reset()
//
// With the default prefix, Buttons are mounted on .uishka-btn and Cards on
// .uishka-card, whose title and body live in .uishka-card__title and
// .uishka-card__body.
package widgets
