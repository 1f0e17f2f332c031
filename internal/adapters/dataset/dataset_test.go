package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/skillswap/internal/adapters/dataset"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/search"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newLoader() *dataset.Loader {
	return dataset.New(dataset.WithClock(func() time.Time { return fixedNow }))
}

func TestLoadSeed(t *testing.T) {
	Convey("Given the embedded seed", t, func() {
		cat, err := newLoader().Load(context.Background(), "")

		Convey("Then it loads the full catalogue", func() {
			So(err, ShouldBeNil)
			So(len(cat.Skills), ShouldEqual, 10)
			So(len(cat.Users), ShouldEqual, 4)
			So(len(cat.Swaps), ShouldEqual, 3)
			So(len(cat.Notifications), ShouldEqual, 3)
			So(len(cat.Conversations), ShouldEqual, 2)
			So(len(cat.Messages), ShouldEqual, 4)
			So(len(cat.Reviews), ShouldEqual, 2)
		})

		Convey("Then conversations resolve participants and their newest message", func() {
			c := cat.Conversations[0]
			So(c.Participants, ShouldResemble, []model.UserRef{{ID: "1", Name: "Sarah Chen"}, {ID: "2", Name: "Alex Rodriguez"}})
			So(c.SwapID, ShouldEqual, "1")
			So(c.LastMessage, ShouldNotBeNil)
			So(c.LastMessage.ID, ShouldEqual, "3")
			So(c.LastMessage.Read, ShouldBeFalse)
			So(c.UpdatedAt, ShouldEqual, fixedNow.Add(-30*time.Minute))
			So(cat.Messages[0].Kind, ShouldEqual, model.MessageText)
		})

		Convey("Then reviews keep their skill ratings", func() {
			r := cat.Reviews[0]
			So(r.RevieweeID, ShouldEqual, "4")
			So(r.Rating, ShouldEqual, 5)
			So(r.SkillRatings, ShouldResemble, []model.SkillRating{{SkillID: "6", Rating: 5}})
			So(r.CreatedAt, ShouldEqual, fixedNow.Add(-24*time.Hour))
		})

		Convey("Then users keep file order and embed skills by value", func() {
			sarah := cat.Users[0]
			So(sarah.Name, ShouldEqual, "Sarah Chen")
			So(sarah.SkillsOffered[0].Name, ShouldEqual, "JavaScript")
			So(sarah.SkillsWanted[1].Name, ShouldEqual, "Spanish")
			So(sarah.SkillsWanted[1].Category, ShouldEqual, "Language")
			So(cat.Users[3].Name, ShouldEqual, "David Kim")
		})

		Convey("Then relative timestamps resolve against the clock", func() {
			So(cat.Users[0].LastSeen, ShouldEqual, fixedNow)
			So(cat.Users[1].LastSeen, ShouldEqual, fixedNow.Add(-30*time.Minute))
			So(cat.Users[0].JoinedAt, ShouldEqual, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
			So(cat.Swaps[1].UpdatedAt, ShouldEqual, fixedNow.Add(-72*time.Hour))
		})

		Convey("Then swaps carry resolved user refs and skills", func() {
			s := cat.Swaps[1]
			So(s.From, ShouldResemble, model.UserRef{ID: "3", Name: "Maria Gonzalez"})
			So(s.RequestedSkill.Name, ShouldEqual, "React")
			So(s.Status, ShouldEqual, model.SwapAccepted)
		})

		Convey("Then the guitar scenario holds on the seed", func() {
			got := search.Search(cat.Users, search.Query{Term: "guitar"})
			So(len(got), ShouldEqual, 2)
			So(got[0].ID, ShouldEqual, "1")
			So(got[1].ID, ShouldEqual, "2")
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given documents on disk", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		write := func(body string) string {
			path := filepath.Join(dir, "catalog.yaml")
			So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
			return path
		}

		Convey("When the document is minimal and valid", func() {
			path := write(`
skills:
  - {id: a, name: Go, category: Programming, level: Expert}
users:
  - {id: u1, name: Ana, skills_offered: [a], last_seen: "2025-05-01T10:00:00Z"}
`)
			cat, err := newLoader().Load(ctx, path)

			Convey("Then it is loaded", func() {
				So(err, ShouldBeNil)
				So(cat.Users[0].SkillsOffered[0].Level, ShouldEqual, model.Expert)
				So(cat.Users[0].SkillsWanted, ShouldBeEmpty)
				So(cat.Users[0].LastSeen, ShouldEqual, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))
				So(cat.Swaps, ShouldBeEmpty)
			})
		})

		Convey("When the file is missing", func() {
			_, err := newLoader().Load(ctx, filepath.Join(dir, "absent.yaml"))

			Convey("Then an invalid dataset error is returned", func() {
				So(errors.Is(err, dataset.ErrInvalidDataset), ShouldBeTrue)
			})
		})
	})
}

// convDoc declares one skill and the users u and v.
const convDoc = "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nusers:\n  - {id: u, name: U}\n  - {id: v, name: V}\n"

func TestParseRejects(t *testing.T) {
	Convey("Given malformed documents", t, func() {
		ctx := context.Background()
		cases := []struct {
			name string
			doc  string
			want string
		}{
			{"broken yaml", `skills: [`, "decode"},
			{"unknown field", "skills:\n  - {id: a, name: Go, category: X, level: Expert, colour: red}", "decode"},
			{"no skills", `users: []`, "Skills"},
			{"bad level", "skills:\n  - {id: a, name: Go, category: X, level: Guru}", "skill_level"},
			{"rating out of range", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nusers:\n  - {id: u, name: U, rating: 7}", "lte"},
			{"duplicate skill", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\n  - {id: a, name: Rust, category: X, level: Expert}", "duplicate skill"},
			{"unknown skill", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nusers:\n  - {id: u, name: U, skills_wanted: [zz]}", "unknown skill"},
			{"duplicate user", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nusers:\n  - {id: u, name: U}\n  - {id: u, name: V}", "duplicate user"},
			{"self swap", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nusers:\n  - {id: u, name: U}\nswaps:\n  - {id: s, from_user_id: u, to_user_id: u, offered_skill_id: a, requested_skill_id: a, status: pending}", "nefield"},
			{"unknown swap user", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nusers:\n  - {id: u, name: U}\nswaps:\n  - {id: s, from_user_id: u, to_user_id: v, offered_skill_id: a, requested_skill_id: a, status: pending}", "unknown user"},
			{"bad status", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nswaps:\n  - {id: s, from_user_id: u, to_user_id: v, offered_skill_id: a, requested_skill_id: a, status: lost}", "swap_status"},
			{"orphan notification", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nnotifications:\n  - {id: n, user_id: ghost, kind: message, title: Hi}", "unknown user"},
			{"miscased level", "skills:\n  - {id: a, name: Go, category: X, level: expert}", "skill_level"},
			{"lonely conversation", convDoc + "conversations:\n  - {id: c, participants: [u]}", "min"},
			{"repeated participant", convDoc + "conversations:\n  - {id: c, participants: [u, u]}", "unique"},
			{"unknown participant", convDoc + "conversations:\n  - {id: c, participants: [u, ghost]}", "unknown user"},
			{"orphan message", convDoc + "messages:\n  - {id: m, conversation_id: c, sender_id: u, content: hi}", "unknown conversation"},
			{"outside sender", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nusers:\n  - {id: u, name: U}\n  - {id: v, name: V}\n  - {id: w, name: W}\nconversations:\n  - {id: c, participants: [u, v]}\nmessages:\n  - {id: m, conversation_id: c, sender_id: w, content: hi}", "not in conversation"},
			{"empty message", convDoc + "conversations:\n  - {id: c, participants: [u, v]}\nmessages:\n  - {id: m, conversation_id: c, sender_id: u}", "required"},
			{"review of unknown swap", convDoc + "reviews:\n  - {id: r, reviewer_id: u, reviewee_id: v, swap_id: s, rating: 5}", "unknown swap"},
			{"review out of range", convDoc + "reviews:\n  - {id: r, reviewer_id: u, reviewee_id: v, swap_id: s, rating: 6}", "lte"},
			{"bad timestamp", "skills:\n  - {id: a, name: Go, category: X, level: Expert}\nusers:\n  - {id: u, name: U, last_seen: yesterday}", "last_seen"},
		}

		for _, tc := range cases {
			_, err := newLoader().Parse(ctx, []byte(tc.doc))

			Convey("Then "+tc.name+" is rejected", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, dataset.ErrInvalidDataset), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, tc.want)
			})
		}
	})
}

func TestSeedCopy(t *testing.T) {
	Convey("Seed returns an independent copy", t, func() {
		a := dataset.Seed()
		a[0] = '#'
		So(dataset.Seed()[0], ShouldNotEqual, '#')
	})
}
