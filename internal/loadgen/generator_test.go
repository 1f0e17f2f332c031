package loadgen

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func roster() []model.UserProfile {
	return []model.UserProfile{
		{ID: "1", Name: "Sarah", SkillsOffered: []model.Skill{{ID: "1"}, {ID: "3"}}},
		{ID: "2", Name: "Alex", SkillsOffered: []model.Skill{{ID: "5"}}},
		{ID: "3", Name: "Maria"},
	}
}

func offers(userID, skillID string) bool {
	for _, u := range roster() {
		if u.ID == userID {
			return u.Offers(skillID)
		}
	}
	return false
}

func TestGenerate(t *testing.T) {
	Convey("Given a small roster", t, func() {
		rnd := rand.New(rand.NewPCG(7, 7))

		Convey("When generating without duplicates", func() {
			out, err := generate(roster(), 200, 0, rnd)

			Convey("Then every action is well formed and unique", func() {
				So(err, ShouldBeNil)
				So(len(out), ShouldEqual, 200)
				seen := map[string]bool{}
				for _, p := range out {
					So(seen[p.ID], ShouldBeFalse)
					seen[p.ID] = true
					So(p.ActorID, ShouldNotEqual, p.TargetID)
					switch p.Kind {
					case action.KindSwapRequest:
						So(p.OfferedSkillID, ShouldNotBeEmpty)
						So(p.RequestedSkillID, ShouldNotBeEmpty)
						So(p.ActorID, ShouldNotEqual, "3")
						So(p.TargetID, ShouldNotEqual, "3")
						So(offers(p.ActorID, p.OfferedSkillID), ShouldBeTrue)
						So(offers(p.TargetID, p.RequestedSkillID), ShouldBeTrue)
						So(strings.TrimSpace(p.Message), ShouldNotBeEmpty)
					case action.KindMessage:
						So(p.Message, ShouldNotBeEmpty)
					default:
						t.Fatalf("unexpected kind %q", p.Kind)
					}
				}
			})
		})

		Convey("When generating with duplicates", func() {
			out, err := generate(roster(), 200, 0.5, rnd)

			Convey("Then some IDs repeat", func() {
				So(err, ShouldBeNil)
				unique := map[string]bool{}
				for _, p := range out {
					unique[p.ID] = true
				}
				So(len(unique), ShouldBeLessThan, len(out))
				So(len(unique), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the roster is too small", func() {
			_, err := generate(roster()[:1], 10, 0, rnd)

			Convey("Then generation fails", func() {
				So(errors.Is(err, ErrTooFewUsers), ShouldBeTrue)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := DefaultConfig()
		So(cfg.validate(), ShouldBeNil)

		Convey("Then out of range values are rejected", func() {
			for _, mutate := range []func(*Config){
				func(c *Config) { c.BaseURL = "" },
				func(c *Config) { c.NumActions = 0 },
				func(c *Config) { c.Duplicates = 1 },
				func(c *Config) { c.Workers = 0 },
			} {
				c := DefaultConfig()
				mutate(c)
				So(errors.Is(c.validate(), ErrInvalidConfig), ShouldBeTrue)
			}
		})
	})
}
