package main

import (
	"fmt"
	"log"
	"os"

	"matchpoint-api/config"
	"matchpoint-api/fixtures"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()
	fixtureManager := fixtures.NewFixtures(config.DB)

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "generate":
		if err := fixtureManager.GenerateTestData(); err != nil {
			log.Fatalf("Fixtures generation failed: %v", err)
		}
	case "clean":
		if err := fixtureManager.CleanDatabase(); err != nil {
			log.Fatalf("Database cleaning failed: %v", err)
		}
	case "refresh":
		if err := fixtureManager.CleanDatabase(); err != nil {
			log.Fatalf("Database cleaning failed: %v", err)
		}
		if err := fixtureManager.GenerateTestData(); err != nil {
			log.Fatalf("Fixtures generation failed: %v", err)
		}
	default:
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage: fixtures <command>")
	fmt.Println("Commands:")
	fmt.Println("  generate  Seed demo players, sports and matches")
	fmt.Println("  clean     Wipe all data")
	fmt.Println("  refresh   Clean then generate")
}
