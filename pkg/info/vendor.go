// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

// Well known messaging system vendors. Using these names lets the agent
// present custom traced services the same way as automatically detected
// ones. Any other vendor name is accepted as well.
const (
	MessageSystemVendorHornetQ     = "HornetQ"
	MessageSystemVendorActiveMQ    = "ActiveMQ"
	MessageSystemVendorRabbitMQ    = "RabbitMQ"
	MessageSystemVendorArtemis     = "Artemis"
	MessageSystemVendorWebSphere   = "WebSphere"
	MessageSystemVendorMQSeriesJMS = "MQSeries JMS"
	MessageSystemVendorMQSeries    = "MQSeries"
	MessageSystemVendorTibco       = "Tibco"
	MessageSystemVendorKafka       = "Apache Kafka"
)

// Well known database vendors.
const (
	DatabaseVendorApacheHive    = "ApacheHive"
	DatabaseVendorCloudscape    = "Cloudscape"
	DatabaseVendorHSQLDB        = "HSQLDB"
	DatabaseVendorProgress      = "Progress"
	DatabaseVendorMaxDB         = "MaxDB"
	DatabaseVendorHanaDB        = "HanaDB"
	DatabaseVendorIngres        = "Ingres"
	DatabaseVendorFirstSQL      = "FirstSQL"
	DatabaseVendorEnterpriseDB  = "EnterpriseDB"
	DatabaseVendorCache         = "Cache"
	DatabaseVendorAdabas        = "Adabas"
	DatabaseVendorFirebird      = "Firebird"
	DatabaseVendorDB2           = "DB2"
	DatabaseVendorDerbyClient   = "Derby Client"
	DatabaseVendorDerbyEmbedded = "Derby Embedded"
	DatabaseVendorFilemaker     = "Filemaker"
	DatabaseVendorInformix      = "Informix"
	DatabaseVendorInstantDB     = "InstantDb"
	DatabaseVendorInterbase     = "Interbase"
	DatabaseVendorMySQL         = "MySQL"
	DatabaseVendorMariaDB       = "MariaDB"
	DatabaseVendorNetezza       = "Netezza"
	DatabaseVendorOracle        = "Oracle"
	DatabaseVendorPervasive     = "Pervasive"
	DatabaseVendorPointbase     = "Pointbase"
	DatabaseVendorPostgreSQL    = "PostgreSQL"
	DatabaseVendorSQLServer     = "SQL Server"
	DatabaseVendorSQLite        = "sqlite"
	DatabaseVendorSybase        = "Sybase"
	DatabaseVendorTeradata      = "Teradata"
	DatabaseVendorVertica       = "Vertica"
	DatabaseVendorCassandra     = "Cassandra"
	DatabaseVendorH2            = "H2"
	DatabaseVendorColdFusionIMQ = "ColdFusion IMQ"
	DatabaseVendorRedshift      = "Amazon Redshift"
	DatabaseVendorCouchbase     = "Couchbase"
)

var messageSystemVendors = map[string]struct{}{
	MessageSystemVendorHornetQ:     {},
	MessageSystemVendorActiveMQ:    {},
	MessageSystemVendorRabbitMQ:    {},
	MessageSystemVendorArtemis:     {},
	MessageSystemVendorWebSphere:   {},
	MessageSystemVendorMQSeriesJMS: {},
	MessageSystemVendorMQSeries:    {},
	MessageSystemVendorTibco:       {},
	MessageSystemVendorKafka:       {},
}

var databaseVendors = map[string]struct{}{
	DatabaseVendorApacheHive:    {},
	DatabaseVendorCloudscape:    {},
	DatabaseVendorHSQLDB:        {},
	DatabaseVendorProgress:      {},
	DatabaseVendorMaxDB:         {},
	DatabaseVendorHanaDB:        {},
	DatabaseVendorIngres:        {},
	DatabaseVendorFirstSQL:      {},
	DatabaseVendorEnterpriseDB:  {},
	DatabaseVendorCache:         {},
	DatabaseVendorAdabas:        {},
	DatabaseVendorFirebird:      {},
	DatabaseVendorDB2:           {},
	DatabaseVendorDerbyClient:   {},
	DatabaseVendorDerbyEmbedded: {},
	DatabaseVendorFilemaker:     {},
	DatabaseVendorInformix:      {},
	DatabaseVendorInstantDB:     {},
	DatabaseVendorInterbase:     {},
	DatabaseVendorMySQL:         {},
	DatabaseVendorMariaDB:       {},
	DatabaseVendorNetezza:       {},
	DatabaseVendorOracle:        {},
	DatabaseVendorPervasive:     {},
	DatabaseVendorPointbase:     {},
	DatabaseVendorPostgreSQL:    {},
	DatabaseVendorSQLServer:     {},
	DatabaseVendorSQLite:        {},
	DatabaseVendorSybase:        {},
	DatabaseVendorTeradata:      {},
	DatabaseVendorVertica:       {},
	DatabaseVendorCassandra:     {},
	DatabaseVendorH2:            {},
	DatabaseVendorColdFusionIMQ: {},
	DatabaseVendorRedshift:      {},
	DatabaseVendorCouchbase:     {},
}

// IsKnownMessageSystemVendor reports whether vendor is one of the
// MessageSystemVendor constants.
func IsKnownMessageSystemVendor(vendor string) bool {
	_, ok := messageSystemVendors[vendor]
	return ok
}

// IsKnownDatabaseVendor reports whether vendor is one of the DatabaseVendor
// constants.
func IsKnownDatabaseVendor(vendor string) bool {
	_, ok := databaseVendors[vendor]
	return ok
}
