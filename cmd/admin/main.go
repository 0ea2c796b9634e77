package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"askmego/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	command := os.Args[1]

	switch command {
	case "lock", "unlock":
		id := argID(2, "project_id")
		if err := setProjectLock(storageSvc, id, command == "lock"); err != nil {
			log.Fatalf("Error updating project: %v", err)
		}
		fmt.Printf("Project %d is now %sed.\n", id, command)
	case "block", "unblock":
		id := argID(2, "request_id")
		if err := setRequestBlock(storageSvc, id, command == "block"); err != nil {
			log.Fatalf("Error updating request: %v", err)
		}
		fmt.Printf("Request %d has been %sed.\n", id, command)
	case "set-status":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-status <request_id> <status>")
			os.Exit(1)
		}
		id := argID(2, "request_id")
		if err := setRequestStatus(storageSvc, id, os.Args[3]); err != nil {
			log.Fatalf("Error updating request: %v", err)
		}
		fmt.Printf("Request %d status set to %q.\n", id, os.Args[3])
	case "delete-project":
		id := argID(2, "project_id")
		if err := storageSvc.DeleteProjectCascade(id); err != nil {
			log.Fatalf("Error deleting project: %v", err)
		}
		fmt.Printf("Project %d and its requests have been deleted.\n", id)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  lock <project_id>")
	fmt.Println("  unlock <project_id>")
	fmt.Println("  block <request_id>")
	fmt.Println("  unblock <request_id>")
	fmt.Println("  set-status <request_id> <status>")
	fmt.Println("  delete-project <project_id>")
	os.Exit(1)
}

func argID(pos int, name string) uint {
	if len(os.Args) <= pos {
		fmt.Printf("Missing <%s> argument.\n", name)
		os.Exit(1)
	}
	id, err := strconv.Atoi(os.Args[pos])
	if err != nil || id < 1 {
		fmt.Printf("Invalid %s. Please provide a positive integer.\n", name)
		os.Exit(1)
	}
	return uint(id)
}

func setProjectLock(s storage.Storage, id uint, locked bool) error {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return err
	}
	project.IsLocked = locked
	return s.UpdateProject(project)
}

func setRequestBlock(s storage.Storage, id uint, blocked bool) error {
	req, err := s.GetRequestByID(id)
	if err != nil {
		return err
	}
	return s.UpdateRequestModeration(id, req.Status, req.Tags, blocked)
}

func setRequestStatus(s storage.Storage, id uint, status string) error {
	req, err := s.GetRequestByID(id)
	if err != nil {
		return err
	}
	return s.UpdateRequestModeration(id, status, req.Tags, req.IsBlocked)
}
