package main

import (
	"log"
	"os"

	"github.com/Tigierre/contractguardian/internal/model"
	"github.com/Tigierre/contractguardian/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Policy Catalog...")

	// Baseline review policies injected into every analysis prompt.
	policies := []model.Policy{
		{Name: "Penali sproporzionate", Category: "liability", Content: "Segnala clausole penali superiori al 10% del valore del contratto o prive di un tetto massimo.", Position: 1, Active: true},
		{Name: "Limitazione di responsabilità", Category: "liability", Content: "Verifica che la responsabilità sia limitata in modo reciproco e con massimali ragionevoli.", Position: 2, Active: true},
		{Name: "Recesso unilaterale", Category: "termination", Content: "Segnala clausole che consentono a una sola parte il recesso senza preavviso adeguato.", Position: 3, Active: true},
		{Name: "Rinnovo tacito", Category: "termination", Content: "Verifica la presenza di rinnovi automatici con finestre di disdetta inferiori a 30 giorni.", Position: 4, Active: true},
		{Name: "Termini di pagamento", Category: "payment", Content: "Segnala termini di pagamento superiori a 60 giorni o privi di interessi di mora.", Position: 5, Active: true},
		{Name: "Proprietà intellettuale", Category: "ip", Content: "Verifica che la titolarità dei risultati sia definita chiaramente e non ceduta integralmente senza compenso.", Position: 6, Active: true},
		{Name: "Riservatezza", Category: "confidentiality", Content: "Verifica che gli obblighi di riservatezza siano reciproci e limitati nel tempo.", Position: 7, Active: true},
		{Name: "Foro competente", Category: "dispute", Content: "Segnala fori esclusivi sfavorevoli o clausole arbitrali con costi sproporzionati.", Position: 8, Active: true},
	}

	for _, p := range policies {
		var existing model.Policy
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			log.Printf("Policy '%s' already exists, skipping...", p.Name)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating policy '%s': %v", p.Name, err)
		} else {
			log.Printf("Created policy: %s", p.Name)
		}
	}

	log.Println("Seeding Legal Norm Catalog...")
	seedLegalNorms(db)

	log.Println("Seeding completed!")
}
