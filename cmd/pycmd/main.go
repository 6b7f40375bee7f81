package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	kcf "github.com/openscilab/pycm-api/pkg/configs/server"
	kpg "github.com/openscilab/pycm-api/pkg/db/postgres"
	"github.com/openscilab/pycm-api/pkg/filestore"
	"github.com/openscilab/pycm-api/pkg/utils/echoutil"
	"github.com/openscilab/pycm-api/pkg/utils/filewatch"

	"github.com/openscilab/pycm-api/cmd/pycmd/handlers"
)

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := kcf.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	admin, err := kcf.AdminFromEnv()
	if err != nil {
		log.Fatalf("can not read admin credential: %s", err)
	}

	// restart (via supervisor) on config updates
	watchCtx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
	if err != nil {
		log.Fatalf("can not watch configration: %s", err)
	}
	defer cancel()
	context.AfterFunc(watchCtx, func() {
		log.Println("config file is updated. quit to restart server.")
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown by config update: %s", err)
		}
	})

	// get dbaccesor
	ctx := context.Background()
	if err := kpg.Migrate(ctx, conf.DBURI); err != nil {
		log.Fatalf("can not migrate database: %s", err)
	}
	db, err := kpg.New(ctx, conf.DBURI)
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	store, err := filestore.New(conf.StoreRoot)
	if err != nil {
		log.Fatalf("can not prepare the file store: %s", err)
	}

	// handlers
	{
		e.POST("/sign_up/", handlers.SignUpHandler(db.Users(), conf.DefaultCredit))
		e.POST("/sign_in/", handlers.SignInHandler(db.Users()))
	}

	{
		e.POST("/cm/create/", handlers.CreateMatrixHandler(db.Users(), db.Matrices(), store))
		e.GET("/cm/", handlers.GetMatrixHandler(db.Users(), db.Matrices(), store))
		e.POST("/cm/update/", handlers.UpdateMatrixHandler(db.Users(), db.Matrices(), store))
		e.DELETE("/cm/:cm_uid/", handlers.DeleteMatrixHandler(db.Users(), db.Matrices(), store, "cm_uid"))

		e.GET("/cm/report/", handlers.ReportMatrixHandler(db.Users(), db.Matrices(), store))
		e.GET("/cm/plot/", handlers.PlotMatrixHandler(db.Users(), db.Matrices(), store))
	}

	{
		e.POST("/compare/", handlers.CompareMatricesHandler(db.Users(), db.Matrices(), store))
		e.POST("/mlcm/", handlers.MultiLabelHandler(db.Users()))
		e.POST("/curve/", handlers.CurveHandler(db.Users()))
	}

	{
		// admin listings, basic-auth against the env credential
		basicAuth := middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
			return admin.Match(username, password), nil
		})
		e.GET("/users/", handlers.ListUsersHandler(db.Users()), basicAuth)
		e.GET("/cms/", handlers.ListCmsHandler(db.Matrices(), store), basicAuth)
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	e.Logger.Fatal(e.Start(":" + conf.ServerPort))
}
