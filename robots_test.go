package sitewalk_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/sitewalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRobots(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"User-agent: *",
		"Disallow: /private",
		"Allow: /private/press",
		"disallow: /tmp # scratch space",
		"Disallow:",
		"Allow:   ",
		"# Disallow: /commented",
		"Sitemap: https://example.com/sitemap.xml",
		"Disallow: /a:b",
	}, "\n")

	rules := sitewalk.ParseRobots(text)

	assert.Equal(t, []string{"/private", "/tmp", "/a:b"}, rules.Disallowed)
	assert.Equal(t, []string{"/private/press"}, rules.Allowed)
}

func TestParseRobots_CRLF(t *testing.T) {
	t.Parallel()

	rules := sitewalk.ParseRobots("User-agent: *\r\nDisallow: /private\r\n")

	assert.Equal(t, []string{"/private"}, rules.Disallowed)
}

func TestRobotsRules_Blocks(t *testing.T) {
	t.Parallel()

	t.Run("full block on disallow root", func(t *testing.T) {
		t.Parallel()

		rules := sitewalk.RobotsRules{Disallowed: []string{"/private", "/"}, Allowed: []string{"/"}}
		assert.True(t, rules.Blocks("/public"))
	})

	t.Run("blocks seed under disallowed prefix", func(t *testing.T) {
		t.Parallel()

		rules := sitewalk.RobotsRules{Disallowed: []string{"/private"}}
		assert.True(t, rules.Blocks("/private/area"))
	})

	t.Run("allow prefix overrides disallow for seed", func(t *testing.T) {
		t.Parallel()

		rules := sitewalk.RobotsRules{Disallowed: []string{"/private"}, Allowed: []string{"/private/press"}}
		assert.False(t, rules.Blocks("/private/press/2024"))
	})

	t.Run("empty seed path is treated as root", func(t *testing.T) {
		t.Parallel()

		rules := sitewalk.RobotsRules{Disallowed: []string{"/private"}}
		assert.False(t, rules.Blocks(""))
	})
}

func TestNewRobotsPolicy(t *testing.T) {
	t.Parallel()

	t.Run("blocked policy has no rules", func(t *testing.T) {
		t.Parallel()

		p := sitewalk.NewRobotsPolicy(sitewalk.ParseRobots("Disallow: /"), "/", sitewalk.MatchSubstring, nil)

		assert.False(t, p.SiteAllowed())
		assert.Empty(t, p.Allowed())
		assert.Empty(t, p.Disallowed())
		assert.False(t, p.Permits("https://example.com/anything"))
	})

	t.Run("policy is not affected by later changes to the rules", func(t *testing.T) {
		t.Parallel()

		rules := sitewalk.RobotsRules{Disallowed: []string{"/private"}}
		p := sitewalk.NewRobotsPolicy(rules, "/", sitewalk.MatchSubstring, nil)
		rules.Disallowed[0] = "/changed"

		got := p.Disallowed()
		got[0] = "/mutated"

		assert.Equal(t, []string{"/private"}, p.Disallowed())
	})

	t.Run("standard mode asks the group about the seed", func(t *testing.T) {
		t.Parallel()

		group := groupFunc(func(path string) bool { return !strings.HasPrefix(path, "/members") })

		assert.False(t, sitewalk.NewRobotsPolicy(sitewalk.RobotsRules{}, "/members/home", sitewalk.MatchStandard, group).SiteAllowed())
		assert.True(t, sitewalk.NewRobotsPolicy(sitewalk.RobotsRules{}, "", sitewalk.MatchStandard, group).SiteAllowed())
	})
}

func TestRobotsPolicy_Permits(t *testing.T) {
	t.Parallel()

	rules := sitewalk.RobotsRules{
		Disallowed: []string{"/private"},
		Allowed:    []string{"/private/press"},
	}

	t.Run("substring mode", func(t *testing.T) {
		t.Parallel()

		p := sitewalk.NewRobotsPolicy(rules, "/", sitewalk.MatchSubstring, nil)
		require.True(t, p.SiteAllowed())

		assert.False(t, p.Permits("https://example.com/private/secret.html"), "true prefix match")
		assert.True(t, p.Permits("https://example.com/private/press/release"), "allow wins")
		assert.True(t, p.Permits("https://example.com/public/x"))
		// Substring matching also hits a disallowed value in the middle of a path.
		assert.False(t, p.Permits("https://example.com/blog/private-equity"), "substring-only match")
	})

	t.Run("prefix mode", func(t *testing.T) {
		t.Parallel()

		p := sitewalk.NewRobotsPolicy(rules, "/", sitewalk.MatchPrefix, nil)

		assert.False(t, p.Permits("https://example.com/private/secret.html"), "true prefix match")
		assert.True(t, p.Permits("https://example.com/private/press/release"), "allow wins")
		assert.True(t, p.Permits("https://example.com/blog/private-equity"), "no substring false positive")
	})

	t.Run("standard mode", func(t *testing.T) {
		t.Parallel()

		var tested []string
		group := groupFunc(func(path string) bool {
			tested = append(tested, path)
			return path != "/hidden?x=1"
		})
		p := sitewalk.NewRobotsPolicy(sitewalk.RobotsRules{}, "/", sitewalk.MatchStandard, group)

		assert.False(t, p.Permits("https://example.com/hidden?x=1"))
		assert.True(t, p.Permits("https://example.com/shown"))
		assert.Contains(t, tested, "/shown")
	})

	t.Run("allow all", func(t *testing.T) {
		t.Parallel()

		p := sitewalk.AllowAll()
		assert.True(t, p.SiteAllowed())
		assert.True(t, p.Permits("https://example.com/private"))
	})
}

func TestParseMatchMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []sitewalk.MatchMode{sitewalk.MatchSubstring, sitewalk.MatchPrefix, sitewalk.MatchStandard} {
		got, err := sitewalk.ParseMatchMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := sitewalk.ParseMatchMode("fuzzy")
	assert.Equal(t, sitewalk.EINVALID, sitewalk.ErrorCode(err))
}

type groupFunc func(path string) bool

func (f groupFunc) Test(path string) bool { return f(path) }
