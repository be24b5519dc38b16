package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"
)

const serverName = "fu-news"

func New(logger *slog.Logger, portal Reader) *zenrpc.Server {
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true, AllowCORS: true})
	rpcServer.Register("news", NewNewsService(portal))
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, serverName, nil))

	return rpcServer
}
