package main

import (
	"campusbook/internal/bookings/events"
	"campusbook/internal/bookings/handler"
	"campusbook/internal/bookings/repository"
	"campusbook/internal/bookings/service"
	"campusbook/internal/bookings/validator"
	roomsrepository "campusbook/internal/rooms/repository"
	roomsservice "campusbook/internal/rooms/service"
	"campusbook/pkg/app"
	"campusbook/pkg/config"
)

func main() {
	cfg := config.Load("bookings")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}
	defer publisher.Close()

	bookingService := initServices(cfg, publisher)
	bookingHandler := handler.NewBookingHandler(bookingService, cfg.Log)

	application := app.NewApplication()
	application.SetApp(cfg, bookingHandler)
	application.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewMongoBookingLockRepository(cfg)

	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)
	clubRepo := roomsrepository.NewMongoClubRepository(cfg)
	roomService := roomsservice.NewRoomService(roomRepo, clubRepo, cfg)

	bookingValidator := validator.NewBookingValidator(cfg.Log)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		roomService,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized")
	return bookingService
}
