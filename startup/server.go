package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/go-redis/redis"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"padel_service/casbinAuthorization"
	"padel_service/handlers"
	application "padel_service/service"
	"padel_service/startup/config"
	"padel_service/store"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

const LogFilePath = "/app/logs/padel.log"

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func initLogger() {
	writer, err := rotatelogs.New(
		LogFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		// Keep stdout logging when the log dir is absent (local runs).
		Logger.Warnf("file log rotation disabled: %v", err)
		return
	}
	Logger.SetOutput(writer)
}

func (server *Server) Start() {

	initLogger()

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	mongoClient := server.initMongoClient(httpClient)
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}(mongoClient, context.Background())

	redisClient := server.initRedisClient()

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("padel_service")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	bookingStore := store.NewBookingMongoDBStore(mongoClient, tracer, Logger)
	if mongoStore, ok := bookingStore.(*store.BookingMongoDBStore); ok {
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			log.Printf("booking indexes not created: %v", err)
		}
	}

	facilityStore := store.NewFacilityMongoDBStore(mongoClient, tracer)
	courtStore := store.NewCourtMongoDBStore(mongoClient, tracer)
	userStore := store.NewUserMongoDBStore(mongoClient, tracer)
	credentialsStore := store.NewCredentialsMongoDBStore(mongoClient, tracer)
	matchStore := store.NewOpenMatchMongoDBStore(mongoClient, tracer)
	availabilityCache := store.NewAvailabilityRedisCache(redisClient, tracer)
	authCache := store.NewAuthRedisCache(redisClient, tracer)
	notifier := application.NewGomailNotifier()

	authService := application.NewAuthService(credentialsStore, userStore, authCache, notifier, tracer, Logger)
	userService := application.NewUserService(userStore, tracer, Logger)
	facilityService := application.NewFacilityService(facilityStore, courtStore, tracer)
	bookingService := application.NewBookingService(
		bookingStore, courtStore, facilityStore, userStore, availabilityCache, notifier, tracer, Logger)
	matchService := application.NewMatchService(matchStore, facilityStore, tracer, Logger)

	authHandler := handlers.NewAuthHandler(authService, tracer, Logger)
	userHandler := handlers.NewUserHandler(userService, tracer)
	facilityHandler := handlers.NewFacilityHandler(facilityService, tracer)
	bookingHandler := handlers.NewBookingHandler(bookingService, tracer, Logger)
	matchHandler := handlers.NewMatchHandler(matchService, tracer, Logger)

	enforcer, err := casbin.NewEnforcerSafe("./casbinAuthorization/rbac_model.conf", "./casbinAuthorization/policy.csv")
	if err != nil {
		log.Fatal(err)
	}

	router := mux.NewRouter()
	router.Use(handlers.MiddlewareContentTypeSet)
	router.Use(handlers.ExtractTraceInfoMiddleware)

	authHandler.Init(router)
	userHandler.Init(router)
	facilityHandler.Init(router)
	bookingHandler.Init(router)
	matchHandler.Init(router)

	cors := gorillaHandlers.CORS(gorillaHandlers.AllowedOrigins([]string{"*"}))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", server.config.Port),
		Handler:      cors(casbinAuthorization.CasbinMiddleware(enforcer, Logger)(router)),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	wait := time.Second * 15
	go func() {
		Logger.Infof("Server listening on port %s", server.config.Port)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	shutdownCtx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func (server *Server) initMongoClient(httpClient *http.Client) *mongo.Client {
	client, err := store.GetClientWithHTTPConfig(server.config.PadelDBHost, server.config.PadelDBPort, httpClient)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store.GetRedisClient(server.config.CacheHost, server.config.CachePort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("padel_service"),
		),
	)
	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}
