package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/skillswap/internal/adapters/repository"
	"github.com/okian/skillswap/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() *model.Catalog {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	js := model.Skill{ID: "1", Name: "JavaScript", Category: "Programming", Level: model.Advanced}
	guitar := model.Skill{ID: "5", Name: "Guitar", Category: "Music", Level: model.Intermediate}
	sarah := model.UserRef{ID: "1", Name: "Sarah Chen"}
	alex := model.UserRef{ID: "2", Name: "Alex Rodriguez"}
	return &model.Catalog{
		Skills: []model.Skill{js, guitar},
		Users: []model.UserProfile{
			{ID: "1", Name: "Sarah Chen", SkillsOffered: []model.Skill{js}, SkillsWanted: []model.Skill{guitar}},
			{ID: "2", Name: "Alex Rodriguez", SkillsOffered: []model.Skill{guitar}, SkillsWanted: []model.Skill{js}},
			{ID: "3", Name: "Maria Gonzalez"},
		},
		Swaps: []model.SwapRequest{
			{ID: "s1", From: sarah, To: alex, OfferedSkill: js, RequestedSkill: guitar, Status: model.SwapPending},
		},
		Notifications: []model.Notification{
			{ID: "n1", UserID: "1", Kind: "message", CreatedAt: now.Add(-time.Hour)},
			{ID: "n2", UserID: "1", Kind: "swap_request", CreatedAt: now.Add(-time.Minute)},
			{ID: "n3", UserID: "1", Kind: "review", Read: true, CreatedAt: now.Add(-48 * time.Hour)},
		},
		Conversations: []model.Conversation{
			{ID: "c1", Participants: []model.UserRef{sarah, alex}, SwapID: "s1", UpdatedAt: now},
		},
		Messages: []model.Message{
			{ID: "m2", ConversationID: "c1", SenderID: "2", Content: "Sure", SentAt: now},
			{ID: "m1", ConversationID: "c1", SenderID: "1", Content: "Hi Alex", SentAt: now.Add(-time.Hour)},
		},
		Reviews: []model.Review{
			{ID: "r1", ReviewerID: "1", RevieweeID: "2", SwapID: "s1", Rating: 5,
				SkillRatings: []model.SkillRating{{SkillID: "5", Rating: 5}}, CreatedAt: now},
		},
	}
}

func TestMemStoreLookups(t *testing.T) {
	Convey("Given a store built from a catalogue", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(ctx, fixture(), repository.WithLookupMetrics(false))

		Convey("Then the roster keeps dataset order", func() {
			roster := store.Roster(ctx)
			So(len(roster), ShouldEqual, 3)
			So(roster[0].ID, ShouldEqual, "1")
			So(roster[2].ID, ShouldEqual, "3")
		})

		Convey("Then users and skills resolve by ID", func() {
			u, err := store.User(ctx, "2")
			So(err, ShouldBeNil)
			So(u.Name, ShouldEqual, "Alex Rodriguez")

			s, err := store.Skill(ctx, "5")
			So(err, ShouldBeNil)
			So(s.Name, ShouldEqual, "Guitar")
		})

		Convey("Then unknown IDs return ErrNotFound", func() {
			_, err := store.User(ctx, "404")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.Skill(ctx, "404")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.SwapsFor(ctx, "404")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.UnreadNotifications(ctx, "404")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then swaps are scoped to the user", func() {
			swaps, err := store.SwapsFor(ctx, "2")
			So(err, ShouldBeNil)
			So(len(swaps), ShouldEqual, 1)

			swaps, err = store.SwapsFor(ctx, "3")
			So(err, ShouldBeNil)
			So(swaps, ShouldBeEmpty)
		})

		Convey("Then notifications are newest first with an unread count", func() {
			list, err := store.Notifications(ctx, "1")
			So(err, ShouldBeNil)
			So(list[0].ID, ShouldEqual, "n2")
			So(list[2].ID, ShouldEqual, "n3")

			unread, err := store.UnreadNotifications(ctx, "1")
			So(err, ShouldBeNil)
			So(unread, ShouldEqual, 2)

			unread, err = store.UnreadNotifications(ctx, "3")
			So(err, ShouldBeNil)
			So(unread, ShouldEqual, 0)
		})

		Convey("Then counts reflect the catalogue", func() {
			So(store.Count(ctx), ShouldResemble, repository.Counts{
				Users: 3, Skills: 2, Swaps: 1, Notifications: 3, Conversations: 1, Messages: 2, Reviews: 1,
			})
		})
	})
}

func TestMemStoreConversations(t *testing.T) {
	Convey("Given a store with one conversation and a review", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(ctx, fixture())

		Convey("Then both participants see the conversation", func() {
			for _, id := range []string{"1", "2"} {
				convs, err := store.ConversationsFor(ctx, id)
				So(err, ShouldBeNil)
				So(convs, ShouldHaveLength, 1)
				So(convs[0].ID, ShouldEqual, "c1")
			}
		})

		Convey("Then a known outsider sees none and an unknown user is not found", func() {
			convs, err := store.ConversationsFor(ctx, "3")
			So(err, ShouldBeNil)
			So(convs, ShouldBeEmpty)

			_, err = store.ConversationsFor(ctx, "99")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then messages come back oldest first", func() {
			msgs, err := store.Messages(ctx, "c1")
			So(err, ShouldBeNil)
			So(msgs, ShouldHaveLength, 2)
			So(msgs[0].ID, ShouldEqual, "m1")
			So(msgs[1].ID, ShouldEqual, "m2")
		})

		Convey("Then unknown conversations are not found", func() {
			_, err := store.Conversation(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.Messages(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then a returned conversation can be modified without effect", func() {
			c, err := store.Conversation(ctx, "c1")
			So(err, ShouldBeNil)
			c.Participants[0].Name = "Mallory"

			again, err := store.Conversation(ctx, "c1")
			So(err, ShouldBeNil)
			So(again.Participants[0].Name, ShouldEqual, "Sarah Chen")
		})

		Convey("Then reviews are scoped to the reviewee", func() {
			got, err := store.ReviewsFor(ctx, "2")
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].ID, ShouldEqual, "r1")

			got, err = store.ReviewsFor(ctx, "1")
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)

			_, err = store.ReviewsFor(ctx, "99")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemStoreIsolation(t *testing.T) {
	Convey("Given a store and its source catalogue", t, func() {
		ctx := context.Background()
		cat := fixture()
		store := repository.NewMemStore(ctx, cat)

		Convey("When the source is modified after construction", func() {
			cat.Users[0].Name = "Mallory"
			cat.Users[0].SkillsOffered[0].Name = "COBOL"

			Convey("Then the store is unaffected", func() {
				u, err := store.User(ctx, "1")
				So(err, ShouldBeNil)
				So(u.Name, ShouldEqual, "Sarah Chen")
				So(u.SkillsOffered[0].Name, ShouldEqual, "JavaScript")
			})
		})

		Convey("When a returned roster is modified", func() {
			roster := store.Roster(ctx)
			roster[1].SkillsWanted[0].Name = "COBOL"

			Convey("Then later reads are unaffected", func() {
				So(store.Roster(ctx)[1].SkillsWanted[0].Name, ShouldEqual, "JavaScript")
			})
		})
	})

	Convey("Given a nil catalogue", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(ctx, nil)

		So(store.Roster(ctx), ShouldBeEmpty)
		So(store.Skills(ctx), ShouldNotBeNil)
		So(store.Count(ctx), ShouldResemble, repository.Counts{})
	})
}
