package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/skillswap/internal/adapters/dataset"
	"github.com/okian/skillswap/internal/config"
	"github.com/okian/skillswap/internal/domain/search"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func execute(args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		t.Setenv("SKILLSWAP_ADDR", ":8080")
		t.Setenv("SKILLSWAP_QUEUE_SIZE", "1000")
		t.Setenv("SKILLSWAP_WORKER_COUNT", "4")

		convey.Convey("Then configuration should be loadable", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
		})
	})
}

func TestBuildService(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When building the service over the seed", func() {
			svc, closeCache, err := buildService(ctx, cfg)
			convey.So(err, convey.ShouldBeNil)
			defer closeCache()

			convey.Convey("Then it serves searches", func() {
				res, err := svc.SearchUsers(ctx, search.Query{}, types.Page{})
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.TotalCount, convey.ShouldEqual, 4)
			})

			convey.Convey("And every surface is routed", func() {
				mux := newMux(ctx, svc)
				for _, path := range []string{"/", "/api-docs", "/openapi.yaml", "/healthz", "/stats", "/users", "/skills", "/facets"} {
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})

		convey.Convey("When Redis is unreachable", func() {
			cfg.RedisAddr = "127.0.0.1:1"
			svc, closeCache, err := buildService(ctx, cfg)

			convey.Convey("Then the service runs without a cache", func() {
				convey.So(err, convey.ShouldBeNil)
				defer closeCache()
				res, err := svc.SearchUsers(ctx, search.Query{Term: "guitar"}, types.Page{})
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.TotalCount, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the dataset path is missing", func() {
			cfg.DatasetPath = filepath.Join(t.TempDir(), "missing.yaml")
			_, _, err := buildService(ctx, cfg)

			convey.Convey("Then building fails", func() {
				convey.So(errors.Is(err, dataset.ErrInvalidDataset), convey.ShouldBeTrue)
			})
		})
	})
}

func TestValidateCommand(t *testing.T) {
	convey.Convey("Given the validate command", t, func() {
		convey.Convey("Then the built-in seed is valid", func() {
			out, err := execute("validate")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "built-in seed: ok (4 users, 10 skills, 3 swaps, 3 notifications, 2 conversations, 2 reviews)")
		})

		convey.Convey("Then a copy of the seed on disk is valid", func() {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			convey.So(os.WriteFile(path, dataset.Seed(), 0o600), convey.ShouldBeNil)
			out, err := execute("validate", path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, path+": ok")
		})

		convey.Convey("Then a broken file is rejected", func() {
			path := filepath.Join(t.TempDir(), "broken.yaml")
			convey.So(os.WriteFile(path, []byte("skills:\n  - id: \"1\"\n    level: Wizard\n"), 0o600), convey.ShouldBeNil)
			_, err := execute("validate", path)
			convey.So(errors.Is(err, dataset.ErrInvalidDataset), convey.ShouldBeTrue)
		})
	})
}

func TestSearchCommand(t *testing.T) {
	convey.Convey("Given the search command over the seed", t, func() {
		convey.Convey("When asking for JSON", func() {
			out, err := execute("search", "--json", "guitar")

			convey.Convey("Then the raw result is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				var res types.SearchResult
				convey.So(json.Unmarshal([]byte(out), &res), convey.ShouldBeNil)
				convey.So(res.TotalCount, convey.ShouldEqual, 2)
				convey.So(res.Users[0].ID, convey.ShouldEqual, "1")
			})
		})

		convey.Convey("When asking for a table", func() {
			out, err := execute("search", "--discover", "--skill", "Photography")

			convey.Convey("Then users are listed with a footer", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "NAME")
				convey.So(out, convey.ShouldContainSubstring, "Alex Rodriguez")
				convey.So(out, convey.ShouldContainSubstring, "2 of 2 users")
			})
		})

		convey.Convey("When the level is given in lower case", func() {
			out, err := execute("search", "--json", "--level", "advanced")

			convey.Convey("Then it is matched as the canonical level", func() {
				convey.So(err, convey.ShouldBeNil)
				var res types.SearchResult
				convey.So(json.Unmarshal([]byte(out), &res), convey.ShouldBeNil)
				convey.So(res.Query.Level, convey.ShouldEqual, "Advanced")
				convey.So(res.TotalCount, convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When the level is unknown", func() {
			_, err := execute("search", "--level", "wizard")

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unknown level")
			})
		})

		convey.Convey("When the rating is out of range", func() {
			_, err := execute("search", "--min-rating", "7")

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSeedCommand(t *testing.T) {
	convey.Convey("Given the seed command", t, func() {
		convey.Convey("Then it prints the built-in dataset", func() {
			out, err := execute("seed")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldEqual, string(dataset.Seed()))
		})

		convey.Convey("Then a written copy validates", func() {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			_, err := execute("seed", "--out", path)
			convey.So(err, convey.ShouldBeNil)

			out, err := execute("validate", path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "2 conversations, 2 reviews")
		})
	})
}
