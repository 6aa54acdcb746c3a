package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
)

func validDef(id string) domain.Achievement {
	return domain.Achievement{
		ID:        id,
		Name:      "Test",
		Points:    10,
		Category:  domain.CategoryEngagement,
		Tier:      domain.TierBronze,
		Criterion: domain.Criterion{Type: domain.CriterionEmailsSent, Threshold: 1},
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *domain.Achievement)
		wantErr error
	}{
		{"valid", func(d *domain.Achievement) {}, nil},
		{"zero points allowed", func(d *domain.Achievement) { d.Points = 0 }, nil},
		{"empty id", func(d *domain.Achievement) { d.ID = "" }, domain.ErrInvalidAchievement},
		{"zero threshold", func(d *domain.Achievement) { d.Criterion.Threshold = 0 }, domain.ErrInvalidAchievement},
		{"negative threshold", func(d *domain.Achievement) { d.Criterion.Threshold = -1 }, domain.ErrInvalidAchievement},
		{"negative points", func(d *domain.Achievement) { d.Points = -5 }, domain.ErrInvalidAchievement},
		{"unknown category", func(d *domain.Achievement) { d.Category = "social" }, domain.ErrInvalidAchievement},
		{"unknown tier", func(d *domain.Achievement) { d.Tier = "diamond" }, domain.ErrInvalidAchievement},
		{"unknown criterion", func(d *domain.Achievement) { d.Criterion.Type = "meetings_booked" }, domain.ErrUnknownCriterion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			d := validDef("a")
			tt.mutate(&d)

			err := c.Register(d)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, 1, c.Len())
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, c.Len())
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(validDef("first_email")))

	err := c.Register(validDef("first_email"))

	require.ErrorIs(t, err, domain.ErrDuplicateAchievement)
	assert.Contains(t, err.Error(), "first_email")
	assert.Equal(t, 1, c.Len())
}

func TestRegister_RestrictedCriteria(t *testing.T) {
	c := New(domain.CriterionEmailsSent)

	require.NoError(t, c.Register(validDef("a")))

	d := validDef("b")
	d.Criterion.Type = domain.CriterionStreakDays
	assert.ErrorIs(t, c.Register(d), domain.ErrUnknownCriterion)
}

func TestSeal(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(validDef("a")))
	c.Seal()

	assert.True(t, c.Sealed())
	assert.ErrorIs(t, c.Register(validDef("b")), domain.ErrCatalogSealed)
	assert.Equal(t, 1, c.Len())
}

func TestLookups(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(validDef("a")))
	require.NoError(t, c.Register(validDef("b")))

	got, ok := c.GetByID("b")
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)

	_, ok = c.GetByID("missing")
	assert.False(t, ok)

	pos, ok := c.Position("b")
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	all := c.ListAll()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)

	all[0].ID = "mutated"
	again, _ := c.GetByID("a")
	assert.Equal(t, "a", again.ID, "ListAll returns a copy")
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.True(t, c.Sealed())
	assert.Equal(t, len(DefaultAchievements()), c.Len())

	first, ok := c.GetByID("first_email")
	require.True(t, ok)
	assert.Equal(t, 10, first.Points)
	assert.Equal(t, domain.CriterionEmailsSent, first.Criterion.Type)
	assert.InDelta(t, 1.0, first.Criterion.Threshold, 0)

	_, ok = c.GetByID("email_master")
	assert.True(t, ok)
}

func TestDefault_CoversEveryCriterionType(t *testing.T) {
	used := make(map[domain.CriterionType]bool)
	for _, d := range DefaultAchievements() {
		used[d.Criterion.Type] = true
	}
	for _, ct := range domain.AllCriterionTypes() {
		assert.True(t, used[ct], "no default achievement uses %s", ct)
	}
}
