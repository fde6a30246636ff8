// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package config

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/go-core-stack/alerter/errors"
	"github.com/go-core-stack/alerter/utils"
)

// Configure is the top level configuration of an alerter process
type Configure struct {
	Mongo    MongoConfig `yaml:"mongo"`
	MQ       MQConfig    `yaml:"mq"`
	SMTP     SMTPConfig  `yaml:"smtp"`
	LogLevel string      `yaml:"logLevel"`
}

// MongoConfig provides the endpoint of the alert store
// credentials are provided separately over environment
type MongoConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Uri  string `yaml:"uri"`
	DB   string `yaml:"db"`
}

// MQConfig provides the rabbitmq endpoint and the alert
// exchange topology to work with
type MQConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Exchange   string `yaml:"exchange"`
	Queue      string `yaml:"queue"`
	RoutingKey string `yaml:"routingKey"`
	Prefetch   int    `yaml:"prefetch"`
}

// SMTPConfig provides the email notification channel settings
type SMTPConfig struct {
	Host      string   `yaml:"host"`
	Port      string   `yaml:"port"`
	Sender    string   `yaml:"sender"`
	Receivers []string `yaml:"receivers"`
}

func (c *Configure) validate() error {
	if c.MQ.Queue == "" {
		return errors.Wrap(errors.MissingConfigKey, "mq queue name is not configured")
	}
	if c.MQ.Exchange == "" {
		return errors.Wrap(errors.MissingConfigKey, "mq exchange name is not configured")
	}
	if c.Mongo.DB == "" {
		return errors.Wrap(errors.MissingConfigKey, "mongo database name is not configured")
	}
	for _, r := range c.SMTP.Receivers {
		if !utils.IsValidEmail(r) {
			return errors.Wrapf(errors.InvalidArgument, "invalid receiver email address %q", r)
		}
	}
	return nil
}

// Load reads and validates the configuration from given yaml file,
// applying the configured log level to the process logger
func Load(filePath string) (*Configure, error) {
	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.DataReadFailed, "read config file failed: %s", err)
	}
	conf := &Configure{}
	if err = yaml.Unmarshal(fileBytes, conf); err != nil {
		return nil, errors.Wrapf(errors.UnexpectedData, "unmarshal yaml file failed: %s", err)
	}
	if err = conf.validate(); err != nil {
		return nil, err
	}
	if conf.LogLevel != "" {
		level, err := log.ParseLevel(conf.LogLevel)
		if err != nil {
			return nil, errors.Wrapf(errors.InvalidArgument, "invalid log level %q", conf.LogLevel)
		}
		log.SetLevel(level)
	}
	return conf, nil
}
