package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/wayfarer/pkg/catalog"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const beaches = "Beaches 🏖️"

func andamanView(t *testing.T) (*wizard.Wizard, *domain.Session, *wizard.View) {
	t.Helper()
	w := wizard.New(catalog.Default())
	s := domain.NewSession("trip-tui")
	s.Auth = domain.SignedIn("asha")
	require.NoError(t, w.SubmitDestination(s, "Andaman"))
	require.NoError(t, w.SubmitInterests(s, []string{beaches}))
	view, err := w.Enter(context.Background(), s)
	require.NoError(t, err)
	return w, s, view
}

func TestPlacesMarkdown(t *testing.T) {
	w, s, _ := andamanView(t)
	view, err := w.Toggle(context.Background(), s, "Ross Island")
	require.NoError(t, err)

	md := PlacesMarkdown(view)
	assert.Contains(t, md, "# Places in Andaman")
	assert.Contains(t, md, "## "+beaches)
	assert.Contains(t, md, "1. [x] **Radhanagar Beach**")
	assert.Contains(t, md, "## Other places")
	assert.Contains(t, md, "4. [ ] **Ross Island**")
	assert.Contains(t, md, "Selected **4** of 5")
	assert.NotContains(t, md, "(all)")
}

func TestDisplayOrder(t *testing.T) {
	_, _, view := andamanView(t)
	assert.Equal(t, []string{
		"Radhanagar Beach", "Elephant Beach", "Cellular Jail", "Ross Island", "Mount Harriet National Park",
	}, DisplayOrder(view))
}

func TestSessionMarkdown(t *testing.T) {
	_, s, _ := andamanView(t)
	md := SessionMarkdown(s)
	assert.Contains(t, md, "signed in as asha")
	assert.Contains(t, md, "**Destination**: Andaman")
	assert.Contains(t, md, "**Interests**: "+beaches)
	assert.NotContains(t, md, "**Places**")
}

func TestRenderers(t *testing.T) {
	out, err := PlainRenderer("# hi")
	require.NoError(t, err)
	assert.Equal(t, "# hi", out)

	out, err = NewRenderer()("# hi")
	require.NoError(t, err)
	assert.Contains(t, out, "hi")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.1.0")
	assert.Contains(t, buf.String(), "trip builder 0.1.0")

	buf.Reset()
	Failure(&buf, "oops %d", 1)
	assert.Contains(t, buf.String(), ">>> oops 1")
}
