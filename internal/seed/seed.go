package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays spreads generated created_at timestamps over this many days.
	MaxDays int
}

// Run populates the database with generated users, posts and comments.
func Run(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(factory, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a couple of fixed users so local API exploration has
	// stable IDs to poke at.
	if count >= 2 {
		fixed := []struct{ first, last, email string }{
			{"Ada", "Lovelace", "ada@example.com"},
			{"Test", "User", "test@example.com"},
		}
		for _, fx := range fixed {
			user, err := factory.CreateUser(func(u *models.User) {
				u.FirstName = fx.first
				u.LastName = fx.last
				u.Email = fx.email
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users available to author posts")
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[factory.rng.Intn(len(users))]

		post, err := factory.CreatePost(user)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

// createComments writes a small random number of comments on each post so
// the comment listings are non-trivial without dominating the dataset.
func createComments(factory *Factory, users []*models.User, posts []*models.Post) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	total := 0
	for _, post := range posts {
		n := factory.rng.Intn(5)
		for i := 0; i < n; i++ {
			user := users[factory.rng.Intn(len(users))]
			if _, err := factory.CreateComment(user, post); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}
