package main

import (
	"campusbook/internal/rooms/handler"
	"campusbook/internal/rooms/repository"
	"campusbook/internal/rooms/service"
	"campusbook/pkg/app"
	"campusbook/pkg/config"
)

func main() {
	cfg := config.Load("rooms")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	roomRepo := repository.NewMongoRoomRepository(cfg)
	clubRepo := repository.NewMongoClubRepository(cfg)
	roomService := service.NewRoomService(roomRepo, clubRepo, cfg)
	roomHandler := handler.NewRoomHandler(roomService, cfg.Log)

	application := app.NewApplication()
	application.SetApp(cfg, roomHandler)
	application.Run()
}
