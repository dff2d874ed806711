package scan

// Rewrite tables for the Spring Boot 4, Spring Modulith
// 2 and Testcontainers 2 upgrades. The scanner reports
// matches; migrate/fixes applies the mechanical subset.

// renamedStarters maps Spring Boot 3 starter artifacts
// to their Spring Boot 4 names.
var renamedStarters = map[string]string{
	"spring-boot-starter-web": "spring-boot-starter-webmvc",
	"spring-boot-starter-aop": "spring-boot-starter-aspectj",
}

// RenamedTestAnnotations maps removed Mockito test
// annotations to their replacements.
var RenamedTestAnnotations = map[string]string{
	"@MockBean": "@MockitoBean",
	"@SpyBean":  "@MockitoSpyBean",
}

// RelocatedImports maps moved Spring Boot types to
// their new packages.
var RelocatedImports = map[string]string{
	"org.springframework.boot.test.mock.mockito.MockBean": "org.springframework.boot.test.mock.mockito.MockitoBean",

	"org.springframework.boot.test.mock.mockito.SpyBean": "org.springframework.boot.test.mock.mockito.MockitoSpyBean",

	"org.springframework.boot.test.autoconfigure.web.servlet.WebMvcTest": "org.springframework.boot.webmvc.test.autoconfigure.WebMvcTest",

	"org.springframework.boot.autoconfigure.domain.EntityScan": "org.springframework.boot.persistence.autoconfigure.EntityScan",

	"org.springframework.boot.BootstrapRegistry": "org.springframework.boot.bootstrap.BootstrapRegistry",

	"org.springframework.boot.BootstrapContext": "org.springframework.boot.bootstrap.BootstrapContext",
}

// RelocatedContainerImports maps Testcontainers 1.x
// container classes to their 2.x packages.
var RelocatedContainerImports = map[string]string{
	"org.testcontainers.containers.PostgreSQLContainer": "org.testcontainers.postgresql.PostgreSQLContainer",

	"org.testcontainers.containers.MySQLContainer": "org.testcontainers.mysql.MySQLContainer",

	"org.testcontainers.containers.MongoDBContainer": "org.testcontainers.mongodb.MongoDBContainer",

	"org.testcontainers.containers.localstack.LocalStackContainer": "org.testcontainers.localstack.LocalStackContainer",
}

// renamedContainerArtifacts lists Testcontainers 1.x
// artifact ids that gained a "testcontainers-" prefix
// in 2.x (all under the org.testcontainers group).
var renamedContainerArtifacts = []string{
	"junit-jupiter",
	"postgresql",
	"mysql",
	"localstack",
	"mongodb",
}

// renamedJacksonClasses maps removed Jackson 2 types
// and annotations to their Jackson 3 replacements.
var renamedJacksonClasses = map[string]string{
	"Jackson2ObjectMapperBuilderCustomizer": "JsonMapperBuilderCustomizer",
	"@JsonComponent":                        "@JacksonComponent",
}

// oldJacksonProperties lists configuration prefixes
// that moved under spring.jackson.json.
var oldJacksonProperties = []string{
	"spring.jackson.read.",
	"spring.jackson.write.",
}
