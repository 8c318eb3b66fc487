// Command seedproducts upserts a small demo catalog into MongoDB so the
// storefront has something to render in development. Safe to re-run: entries
// are keyed by name.
package main

import (
	"context"
	"os"
	"time"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/config"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/infra"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedEntry struct {
	name  string
	typ   string
	color string
	sizes []string
	front string
	back  string
	dest  bool
}

var entries = []seedEntry{
	{"Vestido Esmeralda", "Liso", "Verde", []string{"36", "38", "40"}, "/uploads/clothing/seed_esmeralda_front.jpg", "/uploads/clothing/seed_esmeralda_back.jpg", true},
	{"Vestido Aurora", "Todo bordado", "Dourado", []string{"38", "40", "42"}, "/uploads/clothing/seed_aurora_front.jpg", "/uploads/clothing/seed_aurora_back.jpg", true},
	{"Vestido Serena", "Busto bordado", "Azul", []string{"34", "36"}, "/uploads/clothing/seed_serena_front.jpg", "/uploads/clothing/seed_serena_back.jpg", true},
	{"Vestido Rubi", "Liso", "Vermelho", []string{"40", "42", "44"}, "/uploads/clothing/seed_rubi_front.jpg", "/uploads/clothing/seed_rubi_back.jpg", false},
	{"Vestido Pérola", "Todo bordado", "Branco", []string{"36", "38"}, "/uploads/clothing/seed_perola_front.jpg", "/uploads/clothing/seed_perola_back.jpg", false},
	{"Vestido Ametista", "Busto bordado", "Roxo", []string{"42", "44", "46"}, "/uploads/clothing/seed_ametista_front.jpg", "/uploads/clothing/seed_ametista_back.jpg", false},
	{"Vestido Ônix", "Liso", "Preto", []string{"38", "40", "42", "44"}, "/uploads/clothing/seed_onix_front.jpg", "/uploads/clothing/seed_onix_back.jpg", false},
	{"Vestido Coral", "Liso", "Rosa", []string{"34", "36", "38"}, "/uploads/clothing/seed_coral_front.jpg", "/uploads/clothing/seed_coral_back.jpg", false},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := infra.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	col := db.Collection(model.ClothingCollection)
	now := time.Now().UTC()

	for i, e := range entries {
		// Staggered createdAt keeps the paginated listing order stable.
		createdAt := now.Add(-time.Duration(len(entries)-i) * time.Hour)
		update := bson.M{
			"$set": bson.M{
				"type":          e.typ,
				"color":         e.color,
				"sizes":         e.sizes,
				"frontImageUrl": e.front,
				"backImageUrl":  e.back,
				"destaque":      e.dest,
				"status":        model.StatusActive,
				"updatedAt":     now,
			},
			"$setOnInsert": bson.M{
				"name":      e.name,
				"createdAt": createdAt,
			},
		}
		res, err := col.UpdateOne(ctx, bson.M{"name": e.name}, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Fatal().Err(err).Str("name", e.name).Msg("seed upsert failed")
		}
		if res.UpsertedCount > 0 {
			log.Info().Str("name", e.name).Msg("seeded")
		} else {
			log.Info().Str("name", e.name).Msg("updated")
		}
	}

	log.Info().Int("count", len(entries)).Msg("catalog seed complete")
}
