// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	announcementsfeature "github.com/dalemusser/educonnect/internal/app/features/announcements"
	authfeature "github.com/dalemusser/educonnect/internal/app/features/auth"
	classroomsfeature "github.com/dalemusser/educonnect/internal/app/features/classrooms"
	healthfeature "github.com/dalemusser/educonnect/internal/app/features/health"
	notesfeature "github.com/dalemusser/educonnect/internal/app/features/notes"
	sysauth "github.com/dalemusser/educonnect/internal/app/system/auth"
	"github.com/dalemusser/educonnect/internal/app/system/blobstore"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. EduConnect mounts the health endpoint,
// the public auth endpoints, the token-guarded classroom/announcement/note
// APIs, and a read-only fileserver for uploaded images.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := sysauth.NewTokenManager([]byte(appCfg.JWTSecret), appCfg.TokenExpiry)
	blobs := blobstore.NewLocal(appCfg.UploadPath, appCfg.UploadURL)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded files (announcement images) with pre-compressed file support
	r.Handle(appCfg.UploadURL+"/*", fileserver.Handler(appCfg.UploadURL, appCfg.UploadPath))

	// Public identity endpoints
	authHandler := authfeature.NewHandler(deps.MongoDatabase, tokens, logger)
	r.Mount("/api/auth", authfeature.Routes(authHandler))

	// Token-guarded API
	classroomsHandler := classroomsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/classrooms", classroomsfeature.Routes(classroomsHandler, tokens))

	announcementsHandler := announcementsfeature.NewHandler(deps.MongoDatabase, blobs, logger)
	r.Mount("/api/announcements", announcementsfeature.Routes(announcementsHandler, tokens))

	notesHandler := notesfeature.NewHandler(deps.MongoDatabase, blobs, logger)
	r.Mount("/api/notes", notesfeature.Routes(notesHandler, tokens))

	return r, nil
}
