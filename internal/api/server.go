package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/oshanw/pharmacare-api/docs"
	v1 "github.com/oshanw/pharmacare-api/internal/api/handler/v1"
	"github.com/oshanw/pharmacare-api/internal/api/middleware"
	"github.com/oshanw/pharmacare-api/internal/config"
	"github.com/oshanw/pharmacare-api/internal/repository"
	"github.com/oshanw/pharmacare-api/internal/repository/dao"
	"github.com/oshanw/pharmacare-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	authHandler               *v1.AuthHandler
	medicationHandler         *v1.MedicationHandler
	customerHandler           *v1.CustomerHandler
	prescriptionHandler       *v1.PrescriptionHandler
	prescriptionDetailHandler *v1.PrescriptionDetailHandler
	authenticator             *middleware.Authenticator
}

func NewServer(conf *config.AppConfig, gormDB *gorm.DB) *Server {
	if conf.Gin.Mode != "" {
		gin.SetMode(conf.Gin.Mode)
	}

	s := &Server{
		Config: conf,
		Router: gin.New(),
	}

	s.initHandlers(gormDB)
	s.MountMiddlewares()
	s.MountHandlers()

	return s
}

func (s *Server) initHandlers(gormDB *gorm.DB) {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(gormDB))
	store := repository.NewPharmacyRepository(dao.NewPharmacyDAO(gormDB))

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)

	s.authHandler = v1.NewAuthHandler(s.Config.API.JWTSigningKey, authSvc)
	s.medicationHandler = v1.NewMedicationHandler(service.NewMedicationService(store))
	s.customerHandler = v1.NewCustomerHandler(service.NewCustomerService(store))
	s.prescriptionHandler = v1.NewPrescriptionHandler(service.NewPrescriptionService(store))
	s.prescriptionDetailHandler = v1.NewPrescriptionDetailHandler(service.NewPrescriptionDetailService(store))
	s.authenticator = middleware.NewAuthenticator(s.Config.API.JWTSigningKey, userSvc, authSvc)
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers() {
	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))

	root := s.Router.Group("/v1")
	root.POST("/signup", s.authHandler.HandleSignup)
	root.POST("/login", s.authHandler.HandleLogin)

	authed := root.Group("")
	authed.Use(s.authenticator.VerifyJWT())

	authed.POST("/logout", s.authHandler.HandleLogout)

	medications := authed.Group("/medications")
	medications.GET("", s.medicationHandler.HandleListMedications)
	medications.GET("/:id", s.medicationHandler.HandleGetMedication)
	medications.POST("", s.medicationHandler.HandleCreateMedication)
	medications.PUT("/:id", s.medicationHandler.HandleUpdateMedication)
	medications.DELETE("/:id", s.medicationHandler.HandleDeleteMedication)

	customers := authed.Group("/customers")
	customers.GET("", s.customerHandler.HandleListCustomers)
	customers.GET("/:id", s.customerHandler.HandleGetCustomer)
	customers.POST("", s.customerHandler.HandleCreateCustomer)
	customers.PUT("/:id", s.customerHandler.HandleUpdateCustomer)
	customers.DELETE("/:id", s.customerHandler.HandleDeleteCustomer)

	prescriptions := authed.Group("/prescriptions")
	prescriptions.GET("", s.prescriptionHandler.HandleListPrescriptions)
	prescriptions.GET("/:id", s.prescriptionHandler.HandleGetPrescription)
	prescriptions.POST("", s.prescriptionHandler.HandleCreatePrescription)
	prescriptions.PUT("/:id", s.prescriptionHandler.HandleUpdatePrescription)
	prescriptions.DELETE("/:id", s.prescriptionHandler.HandleDeletePrescription)

	details := authed.Group("/prescription_details")
	details.GET("", s.prescriptionDetailHandler.HandleListPrescriptionDetails)
	details.GET("/:id", s.prescriptionDetailHandler.HandleGetPrescriptionDetail)
	details.POST("", s.prescriptionDetailHandler.HandleCreatePrescriptionDetail)
	details.PUT("/:id", s.prescriptionDetailHandler.HandleUpdatePrescriptionDetail)
	details.DELETE("/:id", s.prescriptionDetailHandler.HandleDeletePrescriptionDetail)
}
