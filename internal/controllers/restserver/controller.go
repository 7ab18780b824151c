package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chrissnell/univtime/internal/log"
	"github.com/chrissnell/univtime/internal/store"
	"github.com/chrissnell/univtime/pkg/config"
	"github.com/chrissnell/univtime/pkg/moment"
)

// Controller represents the REST server controller
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	serverConfig config.ServerData
	engineConfig config.EngineData
	Server       http.Server
	Store        *store.Store
	StoreEnabled bool
	Zones        moment.ZoneLookup
	logger       *zap.SugaredLogger
	handlers     *Handlers
}

// NewController creates a new REST server controller. A nil store disables
// the /moments endpoints.
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, st *store.Store, logger *zap.SugaredLogger) (*Controller, error) {
	server, err := configProvider.GetServerConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading server configuration: %v", err)
	}
	engine, err := configProvider.GetEngineConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading engine configuration: %v", err)
	}
	if _, err := moment.ParseCalendar(engine.DefaultCalendar); err != nil {
		return nil, fmt.Errorf("engine.default_calendar: %v", err)
	}

	ctrl := &Controller{
		ctx:          ctx,
		wg:           wg,
		serverConfig: *server,
		engineConfig: *engine,
		Store:        st,
		StoreEnabled: st != nil,
		Zones:        moment.TZDatabase{},
		logger:       logger,
	}
	if !ctrl.StoreEnabled {
		logger.Info("storage.sqlite_path not provided; /moments endpoints disabled")
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", server.ListenAddr, server.Port)
	ctrl.Server.Handler = ctrl.setupRouter()

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.serverConfig.TLS() {
			if err := c.Server.ListenAndServeTLS(c.serverConfig.Cert, c.serverConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/convert", c.handlers.Convert).Methods(http.MethodGet)
	router.HandleFunc("/fixed/{calendar}", c.handlers.GetFixed).Methods(http.MethodGet)
	router.HandleFunc("/moment/{key}", c.handlers.ExplainKey).Methods(http.MethodGet)
	router.HandleFunc("/astro/new-moon", c.handlers.GetNewMoon).Methods(http.MethodGet)
	router.HandleFunc("/astro/solar-longitude", c.handlers.GetSolarLongitude).Methods(http.MethodGet)
	router.HandleFunc("/astro/daylight", c.handlers.GetDaylight).Methods(http.MethodGet)
	router.HandleFunc("/chinese/new-year/{year}", c.handlers.GetChineseNewYear).Methods(http.MethodGet)
	router.HandleFunc("/epochs", c.handlers.GetEpochs).Methods(http.MethodGet)

	// The moment endpoints need the store.
	if c.StoreEnabled {
		router.HandleFunc("/moments", c.handlers.CreateMoment).Methods(http.MethodPost)
		router.HandleFunc("/moments", c.handlers.ListMoments).Methods(http.MethodGet)
		router.HandleFunc("/moments/{id}", c.handlers.GetMoment).Methods(http.MethodGet)
		router.HandleFunc("/moments/{id}", c.handlers.DeleteMoment).Methods(http.MethodDelete)
	}

	var h http.Handler = router
	h = log.HTTPMiddleware(c.logger)(h)
	h = ghandlers.CompressHandler(h)
	h = ghandlers.RecoveryHandler(ghandlers.RecoveryLogger(recoveryLogger{c.logger}))(h)
	return h
}

// recoveryLogger routes panics caught by the recovery handler to zap.
type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (r recoveryLogger) Println(args ...interface{}) {
	r.logger.Error(args...)
}
