package main

import (
	"context"
	"log"
	"os"
	"time"

	"quiz-api/internal/db"
	"quiz-api/internal/event"
	"quiz-api/internal/handlers"
	"quiz-api/internal/repository"
	"quiz-api/internal/service"
	"quiz-api/internal/table"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "quiz_api"
	}

	client, err := db.Connect(context.Background(), mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := db.Disconnect(client); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.Publisher
	if rabbitURL != "" && eventExchange != "" {
		publisher, err = event.NewPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, attempt events will not be published")
	}

	store := table.NewMongoStore(client.Database(dbName).Collection("quiz_table"))

	quizRepo := repository.NewQuizRepository(store)
	questionRepo := repository.NewQuestionRepository(store)
	userRepo := repository.NewUserRepository(store)
	attemptRepo := repository.NewAttemptRepository(store)
	answerRepo := repository.NewAnswerRepository(store)

	quizService := service.NewQuizService(quizRepo, questionRepo)
	questionService := service.NewQuestionService(questionRepo, quizRepo)
	userService := service.NewUserService(userRepo)
	attemptService := service.NewAttemptService(attemptRepo, questionRepo, answerRepo)
	answerService := service.NewAnswerService(answerRepo, questionRepo)

	quizHandler := handlers.NewQuizHandler(quizService, publisher)
	questionHandler := handlers.NewQuestionHandler(questionService)
	userHandler := handlers.NewUserHandler(userService)
	attemptHandler := handlers.NewAttemptHandler(attemptService, answerService, publisher)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	quizzes := r.Group("/quizzes")
	{
		quizzes.POST("", quizHandler.CreateQuiz)
		quizzes.GET("", quizHandler.ListQuizzes)
		quizzes.GET("/:quizId", quizHandler.GetQuiz)
		quizzes.PUT("/:quizId", quizHandler.UpdateQuiz)
		quizzes.PATCH("/:quizId/visibility", quizHandler.UpdateQuizVisibility)
		quizzes.DELETE("/:quizId", quizHandler.DeleteQuiz)

		quizzes.POST("/:quizId/questions", questionHandler.CreateQuestion)
		quizzes.GET("/:quizId/questions", questionHandler.ListQuestions)
		quizzes.PUT("/:quizId/questions/:questionId", questionHandler.UpdateQuestion)
		quizzes.DELETE("/:quizId/questions/:questionId", questionHandler.DeleteQuestion)
	}

	users := r.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:userId", userHandler.GetUser)
		users.PUT("/:userId", userHandler.UpdateUser)
		users.DELETE("/:userId", userHandler.DeleteUser)

		attempts := users.Group("/:userId/quizzes/:quizId/attempts")
		{
			attempts.POST("", attemptHandler.StartAttempt)
			attempts.GET("/:attemptId", attemptHandler.GetAttempt)
			attempts.GET("/:attemptId/question", attemptHandler.GetCurrentQuestion)
			attempts.POST("/:attemptId/answers", attemptHandler.SubmitAnswer)
			attempts.POST("/:attemptId/next", attemptHandler.Advance)
			attempts.GET("/:attemptId/summary", attemptHandler.GetSummary)
			attempts.GET("/:attemptId/answers", attemptHandler.ListAnswers)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
