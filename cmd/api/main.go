package main

import (
	"context"
	"log"

	"Volunteer_Hub/internal/config"
	"Volunteer_Hub/internal/model"
	"Volunteer_Hub/internal/pkg"
	"Volunteer_Hub/internal/repository/mysql"
	"Volunteer_Hub/internal/repository/redis"
	"Volunteer_Hub/internal/router"
	"Volunteer_Hub/internal/service"
)

func main() {
	cfg := config.Load()

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Subscriber{},
		&model.University{},
		&model.Opportunity{},
		&model.Application{},
		&model.Report{},
		&model.ModerationOutbox{},
	)

	store, err := pkg.NewMediaStore(cfg.UploadDir)
	if err != nil {
		panic(err)
	}

	// 审核流水投递：配了 kafka 走 kafka，否则降级为日志
	sender := service.Sender(service.LogSender)
	if len(cfg.KafkaBrokers) > 0 {
		producer := pkg.NewAuditProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relayer := service.NewAuditRelayer(&mysql.OutboxRepository{DB: mysql.DB}, sender)
	go relayer.Run(ctx)

	// Gin
	r := router.InitRouter(cfg, store)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
