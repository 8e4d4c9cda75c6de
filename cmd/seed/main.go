// Command seed imports the JSON fixtures under _data into MongoDB, or
// wipes the collections with -destroy.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"campdir/internal/common/security"
	"campdir/internal/domain/model"
	"campdir/internal/platform/config"
	"campdir/internal/platform/database"

	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	doImport := flag.Bool("import", false, "import fixture data")
	doDestroy := flag.Bool("destroy", false, "delete all data")
	dataDir := flag.String("data", "_data", "fixture directory")
	flag.Parse()

	if *doImport == *doDestroy {
		log.Fatal("specify exactly one of -import or -destroy")
	}

	config.Load()
	database.Connect()
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *doDestroy {
		destroy(ctx)
		return
	}

	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Could not create indexes: %v", err)
	}
	importData(ctx, *dataDir)
}

func destroy(ctx context.Context) {
	for _, name := range []string{"bootcamps", "courses", "users"} {
		if _, err := database.DB.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Could not clear %s: %v", name, err)
		}
	}
	log.Println("Data destroyed...")
}

func importData(ctx context.Context, dataDir string) {
	var bootcamps []model.Bootcamp
	loadFixture(filepath.Join(dataDir, "bootcamps.json"), &bootcamps)
	var courses []model.Course
	loadFixture(filepath.Join(dataDir, "courses.json"), &courses)

	// user fixtures carry plaintext passwords; hash them on the way in
	var users []struct {
		model.User
		Password string `json:"password"`
	}
	loadFixture(filepath.Join(dataDir, "users.json"), &users)

	now := time.Now()
	for i := range bootcamps {
		bootcamps[i].CreatedAt, bootcamps[i].UpdatedAt = now, now
		if bootcamps[i].Photo == "" {
			bootcamps[i].Photo = model.DefaultPhoto
		}
		if _, err := database.DB.Collection("bootcamps").InsertOne(ctx, bootcamps[i]); err != nil {
			log.Fatalf("Could not insert bootcamp %s: %v", bootcamps[i].Name, err)
		}
	}
	for i := range courses {
		courses[i].CreatedAt, courses[i].UpdatedAt = now, now
		if _, err := database.DB.Collection("courses").InsertOne(ctx, courses[i]); err != nil {
			log.Fatalf("Could not insert course %s: %v", courses[i].Title, err)
		}
	}
	for i := range users {
		u := users[i].User
		hashed, err := security.HashPassword(users[i].Password)
		if err != nil {
			log.Fatalf("Could not hash password for %s: %v", u.Email, err)
		}
		u.Password = hashed
		u.CreatedAt, u.UpdatedAt = now, now
		if _, err := database.DB.Collection("users").InsertOne(ctx, u); err != nil {
			log.Fatalf("Could not insert user %s: %v", u.Email, err)
		}
	}

	log.Printf("Data imported: %d bootcamps, %d courses, %d users", len(bootcamps), len(courses), len(users))
}

func loadFixture(path string, out interface{}) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Could not read fixture %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Fatalf("Could not parse fixture %s: %v", path, err)
	}
}
