// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

var groupSeeds = []models.Group{
	{Title: "Technology", Slug: "technology", Description: "Hardware, software and everything in between"},
	{Title: "Travel", Slug: "travel", Description: "Trip reports and destination notes"},
	{Title: "Books", Slug: "books", Description: "What we are reading"},
	{Title: "Music", Slug: "music", Description: "New releases and old favourites"},
	{Title: "Food", Slug: "food", Description: "Recipes and restaurant finds"},
	{Title: "Science", Slug: "science", Description: "Discoveries and discussions"},
}

// Factory creates fake records for development databases.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory returns a Factory bound to the given database.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser inserts a fake user. The password is always "password123"
// so seeded accounts can be logged into during development.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hash),
		Bio:      gofakeit.Sentence(10),
	}
	for _, o := range overrides {
		o(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost inserts a fake post for the given author. Creation times
// are spread over the past weeks so feeds paginate realistically.
func (f *Factory) CreatePost(author *models.User, group *models.Group, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Text:      gofakeit.Paragraph(1, 3, 8, "\n"),
		AuthorID:  author.ID,
		CreatedAt: time.Now().Add(-time.Duration(f.r.Intn(30*24)) * time.Hour),
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	for _, o := range overrides {
		o(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment inserts a fake comment on a post.
func (f *Factory) CreateComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:     gofakeit.Sentence(8),
		AuthorID: author.ID,
		PostID:   post.ID,
	}
	for _, o := range overrides {
		o(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFollow subscribes user to author's posts.
func (f *Factory) CreateFollow(user, author *models.User) error {
	if user.ID == author.ID {
		return nil
	}
	return f.db.Create(&models.Follow{UserID: user.ID, AuthorID: author.ID}).Error
}

// Groups inserts the built-in group catalogue, skipping slugs that
// already exist.
func Groups(db *gorm.DB) ([]models.Group, error) {
	groups := make([]models.Group, 0, len(groupSeeds))
	for _, g := range groupSeeds {
		group := g
		err := db.Where("slug = ?", group.Slug).FirstOrCreate(&group).Error
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Seed populates the database with users, groups, posts, comments and
// a follow mesh between the users.
func Seed(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	groups, err := Groups(db)
	if err != nil {
		return fmt.Errorf("group seeding failed: %w", err)
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("user seeding failed: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.r.Intn(len(users))]
		var group *models.Group
		// roughly a third of the posts stay ungrouped
		if f.r.Intn(3) > 0 {
			group = &groups[f.r.Intn(len(groups))]
		}
		post, err := f.CreatePost(author, group)
		if err != nil {
			return fmt.Errorf("post seeding failed: %w", err)
		}
		posts = append(posts, post)
	}

	for i := 0; i < opts.NumComments && len(posts) > 0; i++ {
		author := users[f.r.Intn(len(users))]
		post := posts[f.r.Intn(len(posts))]
		if _, err := f.CreateComment(author, post); err != nil {
			return fmt.Errorf("comment seeding failed: %w", err)
		}
	}

	// every user follows a handful of others
	for _, user := range users {
		for n := 0; n < 3; n++ {
			author := users[f.r.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			if err := db.Where(&models.Follow{UserID: user.ID, AuthorID: author.ID}).
				FirstOrCreate(&models.Follow{UserID: user.ID, AuthorID: author.ID}).Error; err != nil {
				return fmt.Errorf("follow seeding failed: %w", err)
			}
		}
	}

	return nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Comment{}, &models.Follow{}, &models.Post{}, &models.Group{}, &models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
