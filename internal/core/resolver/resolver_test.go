package resolver

import (
	"errors"
	"testing"

	"github.com/riordanpawley/overlayctl/internal/domain"
	"github.com/riordanpawley/overlayctl/internal/pattern"
	"github.com/riordanpawley/overlayctl/internal/services/navigation"
	"github.com/riordanpawley/overlayctl/internal/services/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]domain.Definition

func (m mapLookup) Lookup(id string) (domain.Definition, bool) {
	def, ok := m[id]
	return def, ok
}

func re(src string) domain.Matcher {
	return pattern.MustCompile(pattern.EngineRegexp, src)
}

func TestResolve_Rules(t *testing.T) {
	reg := mapLookup{
		"plain":     {ID: "plain", Content: "plain body"},
		"suppress":  {ID: "suppress", Content: "s", Suppress: re(`^/checkout`)},
		"show-only": {ID: "show-only", Content: "o", ShowOnly: re(`^/settings`)},
		"both": {
			ID:       "both",
			Content:  "b",
			Suppress: re(`tab=billing`),
			ShowOnly: re(`^/settings`),
		},
		"hash": {ID: "hash", Content: "h", ShowOnly: re(`#details$`)},
	}

	tests := []struct {
		name    string
		sel     Selection
		loc     string
		policy  Policy
		outcome Outcome
		reason  Reason
		content any
	}{
		{"nothing selected", Selection{}, "/home", Policy{}, OutcomeNothing, ReasonNoSelection, nil},
		{"visible", Select("plain"), "/home", Policy{}, OutcomeContent, ReasonVisible, "plain body"},
		{"suppressed", Select("suppress"), "/checkout/pay", Policy{}, OutcomeNothing, ReasonSuppressed, nil},
		{"not suppressed elsewhere", Select("suppress"), "/home", Policy{}, OutcomeContent, ReasonVisible, "s"},
		{"show-only miss", Select("show-only"), "/home", Policy{}, OutcomeNothing, ReasonNotShown, nil},
		{"show-only hit", Select("show-only"), "/settings/profile", Policy{}, OutcomeContent, ReasonVisible, "o"},
		{"suppress wins over show-only", Select("both"), "/settings?tab=billing", Policy{}, OutcomeNothing, ReasonSuppressed, nil},
		{"both patterns allow", Select("both"), "/settings?tab=profile", Policy{}, OutcomeContent, ReasonVisible, "b"},
		{"fragment is matched", Select("hash"), "/item/4#details", Policy{}, OutcomeContent, ReasonVisible, "h"},
		{"empty id is a selection", Select(""), "/home?modal=", Policy{}, OutcomeNothing, ReasonUnknownSilent, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Resolve(tt.sel, reg, navigation.MustParse(tt.loc), tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, d.Outcome)
			assert.Equal(t, tt.reason, d.Reason)
			assert.Equal(t, tt.content, d.Content)
			assert.False(t, d.Strip)
		})
	}
}

func TestResolve_UnknownIDPolicies(t *testing.T) {
	reg := mapLookup{}
	loc := navigation.MustParse("/home?modal=ghost")

	tests := []struct {
		name    string
		policy  Policy
		outcome Outcome
		reason  Reason
		strip   bool
		content any
	}{
		{"strip", Policy{StripUnknown: true}, OutcomeNothing, ReasonUnknownStripped, true, nil},
		{"strip beats fallback", Policy{StripUnknown: true, Fallback: "fallback"}, OutcomeNothing, ReasonUnknownStripped, true, nil},
		{"fallback", Policy{Fallback: "fallback"}, OutcomeFallback, ReasonUnknownFallback, false, "fallback"},
		{"silent", Policy{}, OutcomeNothing, ReasonUnknownSilent, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Resolve(Select("ghost"), reg, loc, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, d.Outcome)
			assert.Equal(t, tt.reason, d.Reason)
			assert.Equal(t, tt.strip, d.Strip)
			assert.Equal(t, tt.content, d.Content)
			assert.Equal(t, "ghost", d.ID)
		})
	}
}

func TestResolve_SuppressShortCircuitsShowOnly(t *testing.T) {
	showOnlyCalls := 0
	reg := mapLookup{
		"a": {
			ID:       "a",
			Suppress: domain.MatcherFunc(func(string) (bool, error) { return true, nil }),
			ShowOnly: domain.MatcherFunc(func(string) (bool, error) {
				showOnlyCalls++
				return true, nil
			}),
		},
	}

	d, err := Resolve(Select("a"), reg, navigation.MustParse("/"), Policy{})
	require.NoError(t, err)
	assert.Equal(t, ReasonSuppressed, d.Reason)
	assert.Equal(t, 0, showOnlyCalls)
}

func TestResolve_MatcherSeesFullLocation(t *testing.T) {
	var seen string
	reg := mapLookup{
		"a": {ID: "a", ShowOnly: domain.MatcherFunc(func(loc string) (bool, error) {
			seen = loc
			return true, nil
		})},
	}

	_, err := Resolve(Select("a"), reg, navigation.MustParse("https://x.test/p/q?modal=a&z=1#frag"), Policy{})
	require.NoError(t, err)
	assert.Equal(t, "/p/q?modal=a&z=1#frag", seen)
}

func TestResolve_PatternErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	failing := domain.MatcherFunc(func(string) (bool, error) { return false, boom })

	for name, def := range map[string]domain.Definition{
		"suppress":  {ID: "a", Suppress: failing},
		"show-only": {ID: "a", ShowOnly: failing},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Resolve(Select("a"), mapLookup{"a": def}, navigation.MustParse("/"), Policy{})
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	reg := registry.New(nil)
	reg.Register(domain.Definition{ID: "a", Content: "body", ShowOnly: re(`^/x`)})
	loc := navigation.MustParse("/x?modal=a")

	first, err := Resolve(Select("a"), reg, loc, Policy{StripUnknown: true})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Resolve(Select("a"), reg, loc, Policy{StripUnknown: true})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestOutcomeAndReasonStrings(t *testing.T) {
	assert.Equal(t, "nothing", OutcomeNothing.String())
	assert.Equal(t, "content", OutcomeContent.String())
	assert.Equal(t, "fallback", OutcomeFallback.String())
	assert.Equal(t, "unknown", Outcome(99).String())

	assert.Equal(t, "visible", ReasonVisible.String())
	assert.Equal(t, "suppressed for this location", ReasonSuppressed.String())
	assert.Equal(t, "unknown", Reason(99).String())
}

func TestDecision_Visible(t *testing.T) {
	assert.False(t, Decision{Outcome: OutcomeNothing}.Visible())
	assert.True(t, Decision{Outcome: OutcomeContent}.Visible())
	assert.True(t, Decision{Outcome: OutcomeFallback}.Visible())
}
