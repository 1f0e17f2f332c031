package types_test

import (
	"testing"

	"github.com/okian/skillswap/internal/domain/search"
	"github.com/okian/skillswap/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPage(t *testing.T) {
	Convey("Given page normalization", t, func() {
		So(types.Page{}.Normalize(100), ShouldResemble, types.Page{Limit: types.DefaultPageSize})
		So(types.Page{Limit: 500, Offset: -3}.Normalize(100), ShouldResemble, types.Page{Limit: 100})
		So(types.Page{Limit: 5, Offset: 10}.Normalize(100), ShouldResemble, types.Page{Limit: 5, Offset: 10})
	})
}

func TestPaginate(t *testing.T) {
	Convey("Given an ordered list", t, func() {
		items := []string{"a", "b", "c", "d", "e"}

		Convey("Then a window keeps order", func() {
			So(types.Paginate(items, types.Page{Limit: 2, Offset: 1}), ShouldResemble, []string{"b", "c"})
		})

		Convey("Then a window past the end is clipped", func() {
			So(types.Paginate(items, types.Page{Limit: 10, Offset: 3}), ShouldResemble, []string{"d", "e"})
		})

		Convey("Then an offset beyond the list is empty, not nil", func() {
			got := types.Paginate(items, types.Page{Limit: 2, Offset: 9})
			So(got, ShouldNotBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("Then the window is a copy", func() {
			got := types.Paginate(items, types.Page{Limit: 1})
			got[0] = "z"
			So(items[0], ShouldEqual, "a")
		})
	})
}

func TestEchoOf(t *testing.T) {
	Convey("Given a browse query with sentinels", t, func() {
		echo := types.EchoOf(search.BrowseQuery("guitar", "all", "Intermediate"), types.Page{Limit: 10})

		So(echo.Term, ShouldEqual, "guitar")
		So(echo.Category, ShouldBeEmpty)
		So(echo.Level, ShouldEqual, "Intermediate")
		So(echo.Limit, ShouldEqual, 10)
	})
}
