package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"notes-keeper/internal/config"
	"notes-keeper/internal/server"
)

const defaultConfigFile = "config.yml"

func main() {
	// Путь к конфигурации можно переопределить переменной окружения
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = defaultConfigFile
	}

	// Загружаем конфигурацию из файла
	appConfig, err := config.InitConfig[config.Config](configFile)
	if err != nil {
		log.Fatalf("Error initializing config: %v", err)
	}

	srv, err := server.NewServer(appConfig)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := srv.ServeSwagger(); err != nil {
		log.Fatalf("Failed to initialize Swagger UI: %v", err)
	}

	if err := srv.WatchConfig(configFile); err != nil {
		log.Printf("Config watching disabled: %v", err)
	}

	// Канал для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := srv.Start()

	// Ожидание сигнала или ошибки
	select {
	case err := <-errChan:
		log.Printf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	}

	if err := srv.Shutdown(); err != nil {
		log.Printf("Shutdown finished with error: %v", err)
		os.Exit(1)
	}

	log.Println("Notes Keeper stopped")
}
