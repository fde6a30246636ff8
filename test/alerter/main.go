package main

import (
	"context"
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/go-core-stack/alerter/config"
	"github.com/go-core-stack/alerter/db"
	"github.com/go-core-stack/alerter/mq"
	"github.com/go-core-stack/alerter/notify"
	"github.com/go-core-stack/alerter/router"
	"github.com/go-core-stack/alerter/store"
)

// manual end to end run of the alerter wiring, requires a local
// mongodb and rabbitmq to be available
func main() {
	configFile := flag.String("c", "./config.yaml", "the path of configure file")
	flag.Parse()

	conf, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user, pass := config.GetMongoCredentials()
	client, err := db.NewMongoClient(&db.MongoConfig{
		Host:     conf.Mongo.Host,
		Port:     conf.Mongo.Port,
		Uri:      conf.Mongo.Uri,
		Username: user,
		Password: pass,
	})
	if err != nil {
		log.Fatalf("failed to connect to mongo: %s", err)
	}
	defer client.Close(context.Background())

	if err = client.HealthCheck(ctx); err != nil {
		log.Fatalf("failed to perform health check with DB: %s", err)
	}

	table := &store.AlertTable{}
	if err = table.Initialize(client.GetDataStore(conf.Mongo.DB)); err != nil {
		log.Fatalf("failed to initialize alert table: %s", err)
	}

	amqpUser, amqpPass := config.GetAmqpCredentials()
	broker, err := mq.Connect(&mq.Config{
		Host:       conf.MQ.Host,
		Port:       conf.MQ.Port,
		UserName:   amqpUser,
		Password:   amqpPass,
		Exchange:   conf.MQ.Exchange,
		Queue:      conf.MQ.Queue,
		RoutingKey: conf.MQ.RoutingKey,
		Prefetch:   conf.MQ.Prefetch,
	})
	if err != nil {
		log.Fatalf("failed to connect to broker: %s", err)
	}
	defer broker.Close()

	sinks := []router.Sink{
		&router.StoreSink{Table: table},
		&router.PublishSink{Client: broker, RoutingKey: "alert_router." + conf.MQ.RoutingKey},
	}

	if conf.SMTP.Host != "" {
		mail, err := notify.New(notify.Config{
			Host:      conf.SMTP.Host,
			Port:      conf.SMTP.Port,
			Sender:    conf.SMTP.Sender,
			Password:  config.GetSmtpPassword(),
			Receivers: conf.SMTP.Receivers,
		})
		if err != nil {
			log.Fatalf("failed to create email channel: %s", err)
		}
		sinks = append(sinks, mail)
	}

	r := router.New(ctx, sinks...)

	msgQ, err := broker.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %s", err)
	}

	log.Infof("alerter started, consuming from %q", conf.MQ.Queue)
	r.Run(msgQ)
}
