// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package config

import "os"

const (
	// Environment variable name providing mongo alert store username
	MongoUserNameEnv = "MONGO_ALERTDB_USERNAME"

	// Default value for the mongo alert store username
	DefaultMongoUserName = "root"

	// Environment variable name providing mongo alert store password
	MongoPasswordEnv = "MONGO_ALERTDB_PASSWORD"

	// Default value for the mongo alert store password
	DefaultMongoPassword = "password"

	// Environment variable name providing rabbitmq username
	AmqpUserNameEnv = "AMQP_USERNAME"

	// Default value for the rabbitmq username
	DefaultAmqpUserName = "guest"

	// Environment variable name providing rabbitmq password
	AmqpPasswordEnv = "AMQP_PASSWORD"

	// Default value for the rabbitmq password
	DefaultAmqpPassword = "guest"

	// Environment variable name providing smtp sender password
	SmtpPasswordEnv = "SMTP_SENDER_PASSWORD"
)

// Get configured mongodb credentials
func GetMongoCredentials() (string, string) {
	user, ok := os.LookupEnv(MongoUserNameEnv)
	if !ok {
		// if user env is not set return default values even for password
		return DefaultMongoUserName, DefaultMongoPassword
	}
	pass, ok := os.LookupEnv(MongoPasswordEnv)
	if !ok {
		// if password env is not set return default values even for user
		return DefaultMongoUserName, DefaultMongoPassword
	}
	return user, pass
}

// Get configured smtp sender password, empty when not set
func GetSmtpPassword() string {
	return os.Getenv(SmtpPasswordEnv)
}

// Get configured rabbitmq credentials
func GetAmqpCredentials() (string, string) {
	user, ok := os.LookupEnv(AmqpUserNameEnv)
	if !ok {
		return DefaultAmqpUserName, DefaultAmqpPassword
	}
	pass, ok := os.LookupEnv(AmqpPasswordEnv)
	if !ok {
		return DefaultAmqpUserName, DefaultAmqpPassword
	}
	return user, pass
}
