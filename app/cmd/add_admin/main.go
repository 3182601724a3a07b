package main

import (
	"flag"
	"fmt"

	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
)

func main() {
	email := flag.String("email", "admin@mess.local", "admin email")
	password := flag.String("password", "ChangeMe123", "initial password")
	name := flag.String("name", "Mess Admin", "full name")
	flag.Parse()

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	user := &models.User{
		Email:    *email,
		Password: *password,
		FullName: *name,
		IsAdmin:  true,
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating admin: %v\n", err)
		return
	}

	fmt.Printf("Admin created successfully: %s (%s)\n", user.FullName, user.Email)
}
