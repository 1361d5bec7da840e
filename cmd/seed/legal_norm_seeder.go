package main

import (
	"log"

	"github.com/Tigierre/contractguardian/internal/model"

	"gorm.io/gorm"
)

// seedLegalNorms loads the starter norm catalog for Italian service and
// supply contracts.
func seedLegalNorms(db *gorm.DB) {
	norms := []model.LegalNorm{
		{NormId: "cc-1341", Title: "Clausole vessatorie", Citation: "Art. 1341 c.c.", Url: "https://www.normattiva.it/uri-res/N2Ls?urn:nir:stato:regio.decreto:1942-03-16;262~art1341", ContractTypeId: "servizi", JurisdictionId: "it", Relevance: 0.95},
		{NormId: "cc-1382", Title: "Clausola penale", Citation: "Art. 1382 c.c.", Url: "https://www.normattiva.it/uri-res/N2Ls?urn:nir:stato:regio.decreto:1942-03-16;262~art1382", ContractTypeId: "servizi", JurisdictionId: "it", Relevance: 0.9},
		{NormId: "cc-1384", Title: "Riduzione della penale", Citation: "Art. 1384 c.c.", Url: "https://www.normattiva.it/uri-res/N2Ls?urn:nir:stato:regio.decreto:1942-03-16;262~art1384", ContractTypeId: "servizi", JurisdictionId: "it", Relevance: 0.85},
		{NormId: "dlgs-231-2002", Title: "Ritardi di pagamento nelle transazioni commerciali", Citation: "D.Lgs. 231/2002", Url: "https://www.normattiva.it/uri-res/N2Ls?urn:nir:stato:decreto.legislativo:2002-10-09;231", ContractTypeId: "servizi", JurisdictionId: "it", Relevance: 0.9},
		{NormId: "cc-2222", Title: "Contratto d'opera", Citation: "Art. 2222 c.c.", Url: "https://www.normattiva.it/uri-res/N2Ls?urn:nir:stato:regio.decreto:1942-03-16;262~art2222", ContractTypeId: "servizi", JurisdictionId: "it", Relevance: 0.75},
		{NormId: "cc-1490", Title: "Garanzia per i vizi della cosa venduta", Citation: "Art. 1490 c.c.", Url: "https://www.normattiva.it/uri-res/N2Ls?urn:nir:stato:regio.decreto:1942-03-16;262~art1490", ContractTypeId: "fornitura", JurisdictionId: "it", Relevance: 0.9},
		{NormId: "cc-1564", Title: "Risoluzione del contratto di somministrazione", Citation: "Art. 1564 c.c.", Url: "https://www.normattiva.it/uri-res/N2Ls?urn:nir:stato:regio.decreto:1942-03-16;262~art1564", ContractTypeId: "fornitura", JurisdictionId: "it", Relevance: 0.8},
		{NormId: "gdpr-28", Title: "Responsabile del trattamento", Citation: "Art. 28 GDPR", Url: "https://eur-lex.europa.eu/legal-content/IT/TXT/?uri=CELEX:32016R0679", ContractTypeId: "servizi", JurisdictionId: "it", Relevance: 0.7},
	}

	for _, n := range norms {
		var existing model.LegalNorm
		if err := db.Where("norm_id = ?", n.NormId).First(&existing).Error; err == nil {
			log.Printf("Norm '%s' already exists, skipping...", n.NormId)
			continue
		}

		if err := db.Create(&n).Error; err != nil {
			log.Printf("Error creating norm '%s': %v", n.NormId, err)
		} else {
			log.Printf("Created norm: %s (%s)", n.Title, n.NormId)
		}
	}
}
