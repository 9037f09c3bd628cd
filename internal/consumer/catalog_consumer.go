package consumer

import (
	"encoding/json"
	"log"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/roamly/discovery-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogConsumer mirrors tour and ledger messages from the host and booking
// services into the local read model. It is the only writer of that model;
// request handling never mutates it.
type CatalogConsumer struct {
	db *gorm.DB
}

func NewCatalogConsumer(db *gorm.DB) *CatalogConsumer {
	return &CatalogConsumer{db: db}
}

func (cc *CatalogConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		log.Println("[CatalogConsumer] channel closed, stopping consumer")
	}()
}

func (cc *CatalogConsumer) handleMessage(msg amqp.Delivery) {
	switch {
	case strings.HasPrefix(msg.RoutingKey, "tour."):
		cc.handleTour(msg)
	case strings.HasPrefix(msg.RoutingKey, "ledger."):
		cc.handleLedger(msg)
	default:
		log.Printf("[CatalogConsumer] unknown routing key %q, dropping", msg.RoutingKey)
		msg.Nack(false, false)
	}
}

func (cc *CatalogConsumer) handleTour(msg amqp.Delivery) {
	var tour models.Tour
	if err := json.Unmarshal(msg.Body, &tour); err != nil {
		log.Printf("[CatalogConsumer] failed to unmarshal tour: %v", err)
		msg.Nack(false, false)
		return
	}

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		startTimes := tour.StartTimes
		tour.StartTimes = nil

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "city", "country", "base_price_cents", "promo_price_cents",
				"currency", "duration_mins", "min_group", "max_group", "category",
				"host_rating", "languages", "travel_styles", "accessibility", "tags",
				"status", "instant_book", "pay_what_you_want", "early_bird_eligible",
				"updated_at",
			}),
		}).Create(&tour).Error; err != nil {
			return err
		}

		// The message carries the full schedule; replace what we mirror.
		if err := tx.Where("tour_id = ?", tour.ID).Delete(&models.TourStartTime{}).Error; err != nil {
			return err
		}
		for i := range startTimes {
			startTimes[i].ID = 0
			startTimes[i].TourID = tour.ID
		}
		if len(startTimes) > 0 {
			if err := tx.Create(&startTimes).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[CatalogConsumer] failed to upsert tour %d: %v", tour.ID, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[CatalogConsumer] synced tour %d: %s", tour.ID, tour.Title)
	msg.Ack(false)
}

func (cc *CatalogConsumer) handleLedger(msg amqp.Delivery) {
	var ledger models.CapacityLedger
	if err := json.Unmarshal(msg.Body, &ledger); err != nil {
		log.Printf("[CatalogConsumer] failed to unmarshal ledger: %v", err)
		msg.Nack(false, false)
		return
	}

	result := cc.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tour_id"}, {Name: "starts_at"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"confirmed_bookings", "pending_bookings", "cancelled_bookings", "updated_at",
		}),
	}).Create(&ledger)

	if result.Error != nil {
		log.Printf("[CatalogConsumer] failed to upsert ledger for tour %d: %v", ledger.TourID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[CatalogConsumer] synced ledger for tour %d @ %s", ledger.TourID, ledger.StartsAt.Format("2006-01-02 15:04"))
	msg.Ack(false)
}
