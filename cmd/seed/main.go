package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hometasks/internal/auth"
	"hometasks/internal/cache"
	"hometasks/internal/config"
	"hometasks/internal/db"
	apperrors "hometasks/internal/errors"
	"hometasks/internal/repository"
	"hometasks/internal/service"
)

// SeedHousehold is one account in the fixture file along with its family.
type SeedHousehold struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Email    string       `json:"email"`
	Img      *string      `json:"img"`
	Members  []SeedMember `json:"members"`
	Events   []SeedEvent  `json:"events"`
}

type SeedMember struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	IsAdmin   bool       `json:"is_admin"`
	Lists     []SeedItem `json:"lists"`
}

type SeedItem struct {
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
	ListType    string `json:"list_type"`
}

type SeedEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type seedServices struct {
	users   service.UserService
	members service.MemberService
	items   service.ItemService
	events  service.EventService
}

type seedCounts struct {
	users, members, items, events, skipped int
}

func main() {
	source := flag.String("source", "", "fixture file path or http(s) URL (defaults to SEED_FILE)")
	flag.Parse()

	log.Println("Starting seed script...")
	_ = godotenv.Load()
	cfg := config.Load()

	src := *source
	if src == "" {
		src = os.Getenv("SEED_FILE")
	}
	if src == "" {
		log.Fatal("no fixture given: pass -source or set SEED_FILE")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	log.Printf("Loading households from: %s", src)
	households, err := loadHouseholds(src)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}
	log.Printf("Loaded %d households", len(households))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	store := repository.NewStore(gormDB)
	svc := seedServices{
		users:   service.NewUserService(store, auth.NewBcryptHasher(cfg.BcryptCost), cacheClient),
		members: service.NewMemberService(store, cacheClient),
		items:   service.NewItemService(store, cacheClient),
		events:  service.NewEventService(store, cacheClient),
	}

	counts, err := seedHouseholds(context.Background(), svc, households)
	if err != nil {
		log.Fatalf("Failed to seed households: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", counts.users)
	log.Printf("  - Members created: %d", counts.members)
	log.Printf("  - List items created: %d", counts.items)
	log.Printf("  - Events created: %d", counts.events)
	log.Printf("  - Existing usernames skipped: %d", counts.skipped)
}

// loadHouseholds reads the fixture from a local path or an http(s) URL.
func loadHouseholds(src string) ([]SeedHousehold, error) {
	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		body, err = fetch(src)
	} else {
		body, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}

	var households []SeedHousehold
	if err := json.Unmarshal(body, &households); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return households, nil
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture URL returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// seedHouseholds creates every household whose username and email are still
// free. A household that fails part way is removed again before the error is
// returned, so each household lands whole or not at all.
func seedHouseholds(ctx context.Context, svc seedServices, households []SeedHousehold) (seedCounts, error) {
	var counts seedCounts
	for _, h := range households {
		added, err := seedHousehold(ctx, svc, h)
		if errors.Is(err, apperrors.ErrUsernameTaken) || errors.Is(err, apperrors.ErrEmailTaken) {
			log.Printf("Skipping existing user %s: %v", h.Username, err)
			counts.skipped++
			continue
		}
		if err != nil {
			return counts, err
		}
		counts.users++
		counts.members += added.members
		counts.items += added.items
		counts.events += added.events
	}
	return counts, nil
}

func seedHousehold(ctx context.Context, svc seedServices, h SeedHousehold) (seedCounts, error) {
	var added seedCounts
	user, err := svc.users.CreateUser(ctx, service.CreateUserInput{
		Username: h.Username,
		Password: h.Password,
		Email:    h.Email,
		Img:      h.Img,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) || errors.Is(err, apperrors.ErrEmailTaken) {
			return added, err
		}
		return added, fmt.Errorf("error creating user %s: %w", h.Username, err)
	}

	if err := seedFamily(ctx, svc, user.ID, h, &added); err != nil {
		if delErr := svc.users.DeleteUser(ctx, user.ID); delErr != nil {
			log.Printf("Failed to roll back user %s: %v", h.Username, delErr)
		}
		return seedCounts{}, err
	}
	return added, nil
}

func seedFamily(ctx context.Context, svc seedServices, userID uint, h SeedHousehold, added *seedCounts) error {
	for _, m := range h.Members {
		member, err := svc.members.AddMember(ctx, service.CreateMemberInput{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			IsAdmin:   m.IsAdmin,
			UserID:    userID,
		})
		if err != nil {
			return fmt.Errorf("error creating member %s for %s: %w", m.FirstName, h.Username, err)
		}
		added.members++

		for _, it := range m.Lists {
			if _, err := svc.items.AddItem(ctx, service.CreateItemInput{
				Text:        it.Text,
				IsCompleted: it.IsCompleted,
				ListType:    it.ListType,
				MemberID:    member.MemberID,
			}); err != nil {
				return fmt.Errorf("error creating item for member %d: %w", member.MemberID, err)
			}
			added.items++
		}
	}

	for _, ev := range h.Events {
		if _, err := svc.events.AddEvent(ctx, service.CreateEventInput{
			Title:  ev.Title,
			Start:  ev.Start,
			End:    ev.End,
			UserID: userID,
		}); err != nil {
			return fmt.Errorf("error creating event %s for %s: %w", ev.Title, h.Username, err)
		}
		added.events++
	}
	return nil
}
