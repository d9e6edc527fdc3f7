package style

import (
	"image/color"
	"testing"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolbar = `
<flex id="bar" class="toolbar">
    <box id="a" class="button"></box>
    <box id="b" class="button wide" style="layout-weight: 2"></box>
    <flow id="c"></flow>
</flex>`

func TestBuildKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	doc, err := BuildString(toolbar)
	require.NoError(t, err)
	assert.Equal(t, 4, doc.Len())
	root := doc.Root()
	assert.Equal(t, layout.KindFlex, root.Kind())
	assert.Equal(t, "bar", root.ID())
	assert.True(t, root.HasClass("toolbar"))
	children := root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, layout.KindBox, children[0].Kind())
	assert.Equal(t, layout.KindFlow, children[2].Kind())
	assert.Same(t, children[1], doc.ByID("b"))
	assert.Equal(t, float32(2), children[1].Weight())
	assert.Equal(t, "box", doc.Element(children[0]).Data)
}

func TestBuildDisplayKind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	doc, err := BuildString(`<div><div class="row"></div><div style="display: none"></div></div>`,
		`.row { display: flex; flex-direction: column }`)
	require.NoError(t, err)
	children := doc.Root().Children()
	require.Len(t, children, 2)
	assert.Equal(t, layout.KindBox, doc.Root().Kind())
	assert.Equal(t, layout.KindFlex, children[0].Kind())
	assert.Equal(t, layout.Column, children[0].Layout().(*layout.Flex).Direction())
	assert.False(t, children[1].Visible())
	assert.Empty(t, doc.Problems())
}

func TestBuildErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	_, err := BuildString(`<box></box><box></box>`)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = BuildString(`   `)
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = ParseStylesheet(`box >> { width: 10 }`)
	assert.Error(t, err)
}

func TestCascadeOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	css := `
	#a { width: 30px }
	.button { width: 10px; height: 5px }
	box { width: 20px; height: 50px }
	.wide { width: 40px !important }
	box.button { height: 7px }
	`
	doc, err := BuildString(toolbar, css)
	require.NoError(t, err)
	a, b := doc.ByID("a"), doc.ByID("b")
	assert.Equal(t, layout.Px(30), a.Width(), "id beats class and element")
	assert.Equal(t, layout.Px(7), a.Height(), "compound selector beats class")
	assert.Equal(t, layout.Px(40), b.Width(), "important beats specificity")
}

func TestCascadeInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	markup := `<box><box id="x" style="opacity: 0.5; color: #f00"></box></box>`
	doc, err := BuildString(markup, `#x { opacity: 0.25; color: blue !important }`)
	require.NoError(t, err)
	x := doc.ByID("x")
	assert.Equal(t, float32(0.5), x.Opacity(), "inline beats id rule")
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, x.Color(), "important rule beats inline")
}

func TestStyleElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	markup := `<style>.m { margin: 1px 2px }</style>
	<box><style>.p { padding: 1 2 3 4 }</style><box class="m p"></box></box>`
	doc, err := BuildString(markup)
	require.NoError(t, err)
	require.Equal(t, 2, doc.Len())
	child := doc.Root().FirstChild()
	assert.Equal(t, dimen.Insets{Top: 1, Right: 2, Bottom: 1, Left: 2}, child.Margin())
	assert.Equal(t, dimen.Insets{Top: 1, Right: 2, Bottom: 3, Left: 4}, child.Padding())
}

func TestProblemsAreCollected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	doc, err := BuildString(`<box style="width: 10px; height: lots; frobnicate: 1; flex-direction: row"></box>`)
	require.NoError(t, err)
	assert.Equal(t, layout.Px(10), doc.Root().Width())
	assert.Equal(t, layout.Wrap, doc.Root().Height())
	require.Len(t, doc.Problems(), 3)
	codes := []int{}
	for _, p := range doc.Problems() {
		codes = append(codes, core.Code(p))
	}
	assert.ElementsMatch(t, []int{core.EINVALID, core.EMISSING, core.EINVALID}, codes)
}

func TestQuery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	doc, err := BuildString(toolbar)
	require.NoError(t, err)
	views, err := doc.Query("flex > .button")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].ID())
	assert.Equal(t, "b", views[1].ID())
	_, err = doc.Query("[[")
	assert.Error(t, err)
}

func TestSpecificity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	assert.Equal(t, specificity{0, 0, 1}, specificityOf("box"))
	assert.Equal(t, specificity{1, 0, 0}, specificityOf("#a"))
	assert.Equal(t, specificity{0, 2, 1}, specificityOf("box.button.wide"))
	assert.Equal(t, specificity{1, 1, 2}, specificityOf("flex > box#x:first-child"))
	assert.Equal(t, specificity{0, 1, 0}, specificityOf("[id=a]"))
	assert.True(t, specificityOf(".a").less(specificityOf("#a")))
}

func TestPropertyValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	c, err := Property("#0f08").Color()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 0xff, A: 0x88}, c)
	c, err = Property("Teal").Color()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 0x80, B: 0x80, A: 0xff}, c)
	_, err = Property("#12345").Color()
	assert.Error(t, err)
	v, err := Property("3px, 4").Vec2()
	require.NoError(t, err)
	assert.Equal(t, dimen.V(3, 4), v)
	r, err := Property("45deg").Float()
	require.NoError(t, err)
	assert.Equal(t, float32(45), r)
	_, err = Property("50%").Length()
	assert.Error(t, err)
}

func TestApplyFlexProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.style")
	defer teardown()
	//
	flow := layout.NewFlow()
	require.NoError(t, Apply(&flow.Node, "justify_content", "space-between"))
	require.NoError(t, Apply(&flow.Node, "align-items", "center"))
	require.NoError(t, Apply(&flow.Node, "flex-wrap", "nowrap"))
	require.NoError(t, Apply(&flow.Node, "align-content", "stretch"))
	assert.Equal(t, layout.ItemsSpaceBetween, flow.ItemsAlign())
	assert.Equal(t, layout.CrossCenter, flow.CrossAlign())
	assert.Equal(t, layout.NoWrap, flow.Wrap())
	assert.Equal(t, layout.WrapStretch, flow.WrapAlign())
	box := layout.NewBox()
	err := Apply(&box.Node, "flex-wrap", "wrap")
	assert.Equal(t, core.EINVALID, core.Code(err))
	err = Apply(&box.Node, "no-such-thing", "1")
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Contains(t, Properties(), "layout-align")
}
