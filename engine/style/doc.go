/*
Package style builds layout trees from markup and stylesheets.

Markup uses HTML syntax. Elements named box, flex and flow create views
of the respective kind; other elements create boxes unless their style
sets `display`. Element ids and classes are carried over to the views.
Elements must be closed explicitly, as HTML does not know self-closing
custom elements.

	<flex id="bar" class="toolbar">
	    <box class="button"></box>
	    <box class="button" style="layout-weight: 1"></box>
	</flex>

Stylesheets use CSS syntax. Selectors are matched against the markup
elements, and declarations are applied in cascade order: by importance,
then inline before stylesheet rules, then by selector specificity, then
by source order. Values are handed to views through their setters, so
styling a view marks it like any other property change.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'motif.style'.
func tracer() tracing.Trace {
	return tracing.Select("motif.style")
}
