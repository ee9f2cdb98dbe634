// Command seed populates a running server with demo users and tasks through
// the public API.
package main

import (
	"fmt"
	"os"
	"time"
)

type seedTask struct {
	title       string
	description string
	dueInDays   int // negative means no due date
	status      int
	priority    int
}

type seedUser struct {
	username string
	email    string
	tasks    []seedTask
}

var seedUsers = []seedUser{
	{
		username: "alice",
		email:    "alice@example.com",
		tasks: []seedTask{
			{title: "Write quarterly report", description: "Q3 numbers for the board", dueInDays: 3, status: 1, priority: 2},
			{title: "Book flights", dueInDays: 10, status: 0, priority: 1},
			{title: "Renew gym membership", dueInDays: -1, status: 2, priority: 0},
		},
	},
	{
		username: "bob",
		email:    "bob@example.com",
		tasks: []seedTask{
			{title: "Fix staging deploy", description: "Pipeline fails on migration step", dueInDays: 1, status: 1, priority: 2},
			{title: "Review design doc", dueInDays: 5, status: 0, priority: 1},
		},
	},
}

const seedPassword = "Password1!"

func main() {
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	client := NewAPIClient(apiURL)

	for _, u := range seedUsers {
		auth, err := client.Register(u.username, u.email, seedPassword)
		if err != nil {
			// Already seeded on a previous run; log in instead.
			auth, err = client.Login(u.username, seedPassword)
			if err != nil {
				fmt.Fprintf(os.Stderr, "seed: %s: %v\n", u.username, err)
				os.Exit(1)
			}
		}

		for _, t := range u.tasks {
			var due *time.Time
			if t.dueInDays >= 0 {
				d := time.Now().AddDate(0, 0, t.dueInDays)
				due = &d
			}
			if _, err := client.CreateTask(auth.AccessToken, t.title, t.description, due, t.status, t.priority); err != nil {
				fmt.Fprintf(os.Stderr, "seed: %s: %q: %v\n", u.username, t.title, err)
				os.Exit(1)
			}
		}

		fmt.Printf("seeded %s with %d tasks\n", u.username, len(u.tasks))
	}
}
