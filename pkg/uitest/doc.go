// Package uitest provides testing helpers for uishka widgets.
//
// The uitest package reduces boilerplate when testing widgets by parsing a
// page, mounting the widget library on it and offering assertions on the
// resulting DOM.
//
// # Quick Start
//
//	func TestCheckout(t *testing.T) {
//	    h := uitest.New(t, `<button class="uishka-btn" id="pay">Pay</button>`).Build()
//	    btn := h.Button("#pay")
//	    btn.Loading()
//	    uitest.ExpectText(t, h.Node("#pay"), "Loading...")
//	    uitest.ExpectAttribute(t, h.Node("#pay"), "disabled", "")
//	}
//
// # Fluent Builder
//
// The builder allows chaining setup operations:
//
//	h := uitest.New(t, page).
//	    WithConfig(cfg).
//	    WithOption(component.WithMetrics(rec)).
//	    Build()
//
// Use WithoutMount to construct widgets by hand.
//
// # Liveness
//
// Remove detaches the matching elements and runs the mutation checkpoint,
// so the liveness pass has already happened when it returns:
//
//	h.Remove(".uishka-card")
//	if h.Lib.Cards().Len() != 0 { ... }
package uitest
