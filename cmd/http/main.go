package main

import (
	"context"
	"mise-service/internal/app/config"
	"mise-service/internal/app/delivery/http/controllers"
	"mise-service/internal/app/delivery/http/middlewares"
	"mise-service/internal/app/delivery/http/routers"
	"mise-service/internal/app/drivers/database"
	"mise-service/internal/app/drivers/logger"
	"mise-service/internal/app/drivers/messaging"
	"mise-service/internal/app/drivers/storage"
	"mise-service/internal/app/services/core/schedules"
	"mise-service/internal/app/services/core/staffs"
	"mise-service/internal/app/services/core/timeslots"
	"mise-service/internal/app/services/shared/events"
	"mise-service/internal/app/services/shared/locker"
	"mise-service/internal/app/services/shared/redis"
	sharedStorage "mise-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	worker := bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}, location)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	worker.Start(workerCtx)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	workerCancel()
	worker.Stop()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap, location *time.Location) *schedules.Worker {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// RabbitMQ
	schedulePublisher, err := events.NewSchedulePublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.RabbitMQScheduleQueue, bootstrap.Logger)
	if err != nil {
		logrus.Fatalf("Failed to initialize schedule publisher: %v", err)
	}

	// Minio
	avatarStorage := sharedStorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Status resolver
	statusResolver := schedules.NewStatusResolver(location)

	// TimeSlot
	timeSlotMongoRepository := timeslots.NewTimeSlotMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	timeSlotUsecase := timeslots.NewTimeSlotUsecase(timeSlotMongoRepository, bootstrap.Logger)
	timeSlotController := controllers.NewTimeSlotController(bootstrap.Logger, timeSlotUsecase)

	// Staff
	staffMongoRepository := staffs.NewStaffMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	staffUsecase := staffs.NewStaffUsecase(staffMongoRepository, avatarStorage, bootstrap.InternalConfig, bootstrap.Logger)
	staffController := controllers.NewStaffController(bootstrap.Logger, staffUsecase)

	// Schedule
	cellMongoRepository := schedules.NewCellMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	scheduleUsecase := schedules.NewScheduleUsecase(
		cellMongoRepository,
		timeSlotMongoRepository,
		staffMongoRepository,
		redisRepository,
		lockerService,
		schedulePublisher,
		statusResolver,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase, statusResolver)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, timeSlotController, scheduleController, staffController)

	return schedules.NewWorker(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		lockerService,
		cellMongoRepository,
		timeSlotMongoRepository,
		redisRepository,
		statusResolver,
		schedulePublisher,
	)
}
