package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/springforge/migrate/scan"
)

// writeProject materializes a fake project tree from a
// path -> content map and returns its root.
func writeProject(
	tb testing.TB,
	files map[string]string,
) string {
	tb.Helper()

	root := tb.TempDir()

	for rel, content := range files {
		pa := filepath.Join(root, rel)
		require.NoError(
			tb, os.MkdirAll(filepath.Dir(pa), 0o755),
		)
		require.NoError(tb, os.WriteFile(
			pa, []byte(content), 0o600,
		))
	}

	return root
}

func TestProject_extracts_versions(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"pom.xml": `<properties>
  <spring-boot.version>3.4.1</spring-boot.version>
  <spring-modulith.version>1.3.0</spring-modulith.version>
  <testcontainers.version>1.20.4</testcontainers.version>
</properties>
`,
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	assert.Equal(t, "3.4.1", rep.SpringBootVersion)
	assert.Equal(t, "1.3.0", rep.SpringModulithVersion)
	assert.Equal(t, "1.20.4", rep.TestcontainersVersion)
}

func TestProject_flags_renamed_starters(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"pom.xml": `<dependencies>
  <dependency>
    <artifactId>spring-boot-starter-web</artifactId>
  </dependency>
</dependencies>
`,
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	require.Len(t, rep.Issues, 1)
	is := rep.Issues[0]
	assert.Equal(t, scan.SeverityCritical, is.Severity)
	assert.Equal(t, "pom.xml", is.File)
	assert.Equal(t, 3, is.Line)
	assert.Contains(
		t, is.Suggestion, "spring-boot-starter-webmvc",
	)
}

func TestProject_security_test_needs_matching_group(
	t *testing.T,
) {
	t.Parallel()

	oldCoords := writeProject(t, map[string]string{
		"pom.xml": `<dependency>
  <groupId>org.springframework.security</groupId>
  <artifactId>spring-security-test</artifactId>
</dependency>
`,
	})

	rep, err := scan.Project(oldCoords)
	require.NoError(t, err)
	require.Len(t, rep.Issues, 1)
	assert.Contains(
		t,
		rep.Issues[0].Suggestion,
		"spring-boot-starter-security-test",
	)

	otherGroup := writeProject(t, map[string]string{
		"pom.xml": `<dependency>
  <groupId>com.example</groupId>
  <artifactId>spring-security-test</artifactId>
</dependency>
`,
	})

	rep, err = scan.Project(otherGroup)
	require.NoError(t, err)
	assert.Empty(t, rep.Issues)
}

func TestProject_flags_testcontainers_artifacts(
	t *testing.T,
) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"pom.xml": `<dependency>
  <groupId>org.testcontainers</groupId>
  <artifactId>postgresql</artifactId>
</dependency>
<dependency>
  <groupId>org.postgresql</groupId>
  <artifactId>postgresql</artifactId>
</dependency>
`,
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	require.Len(t, rep.Issues, 1)
	assert.Equal(
		t, scan.SeverityWarning, rep.Issues[0].Severity,
	)
	assert.Contains(
		t,
		rep.Issues[0].Suggestion,
		"testcontainers-postgresql",
	)
}

func TestProject_flags_old_test_annotations(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"src/test/java/OrderTest.java": `class OrderTest {
    @MockBean
    OrderService service;
    // @SpyBean stays commented out
}
`,
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	require.Len(t, rep.Issues, 1)
	is := rep.Issues[0]
	assert.Equal(
		t,
		filepath.Join("src/test/java", "OrderTest.java"),
		is.File,
	)
	assert.Equal(t, 2, is.Line)
	assert.Contains(t, is.Suggestion, "@MockitoBean")
}

func TestProject_flags_relocated_imports(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"src/test/java/WebTest.java": "import org.springframework.boot.test." +
			"autoconfigure.web.servlet.WebMvcTest;\n",
		"src/test/java/PgTest.java": "import org.testcontainers.containers." +
			"PostgreSQLContainer;\n",
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)
	require.Len(t, rep.Issues, 2)

	categories := []string{
		rep.Issues[0].Category,
		rep.Issues[1].Category,
	}
	assert.Contains(
		t,
		categories,
		"Spring Boot 4 - Package Relocations",
	)
	assert.Contains(
		t,
		categories,
		"Testcontainers 2.x - Package Changes",
	)
}

func TestProject_flags_localstack_and_generics(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"src/test/java/AwsTest.java": `class AwsTest {
    static PostgreSQLContainer<?> pg;
    void endpoint() {
        var url = localstack.getEndpointOverride(LocalStackContainer.Service.S3);
    }
}
`,
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	// Line 4 matches both the Service enum rule and
	// the endpoint override rule.
	assert.Len(t, rep.Issues, 3)
}

func TestProject_flags_jackson_classes(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"src/main/java/JsonConfig.java": `@JsonComponent
class JsonConfig {
    Jackson2ObjectMapperBuilderCustomizer customizer;
}
`,
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)
	assert.Len(t, rep.Issues, 2)

	for _, is := range rep.Issues {
		assert.Equal(
			t, "Spring Boot 4 - Jackson 3", is.Category,
		)
	}
}

func TestProject_retryable_is_informational(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"src/main/java/Client.java": `class Client {
    @Retryable
    void call() {}
}
`,
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	require.Len(t, rep.Issues, 1)
	assert.Equal(
		t, scan.SeverityInfo, rep.Issues[0].Severity,
	)
}

func TestProject_flags_old_jackson_properties(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"src/main/resources/application.properties": `spring.jackson.read.feature=true
# spring.jackson.write.feature=false
`,
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	require.Len(t, rep.Issues, 1)
	assert.Equal(t, 1, rep.Issues[0].Line)
	assert.Contains(
		t,
		rep.Issues[0].Suggestion,
		"spring.jackson.json",
	)
}

func TestProject_modulith_needs_event_store_config(
	t *testing.T,
) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"pom.xml": "<spring-modulith.version>1.3.0" +
			"</spring-modulith.version>\n",
		"src/main/resources/application.properties": "server.port=8080\n",
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	var found bool

	for _, is := range rep.Issues {
		if is.Category == "Spring Modulith 2.0 - Configuration" {
			found = true

			assert.Equal(
				t, scan.SeverityCritical, is.Severity,
			)
		}
	}

	assert.True(t, found)
}

func TestProject_modulith_config_present_is_clean(
	t *testing.T,
) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"pom.xml": "<spring-modulith.version>1.3.0" +
			"</spring-modulith.version>\n",
		"src/main/resources/application.properties": "spring.modulith.events.jdbc.schema=events\n",
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)
	assert.Empty(t, rep.Issues)
}

func TestProject_flyway_events_schema(t *testing.T) {
	t.Parallel()

	missingRoot := writeProject(t, map[string]string{
		"pom.xml": "<spring-modulith.version>1.3.0" +
			"</spring-modulith.version>\n",
		"src/main/resources/db/migration/V1__init.sql": "CREATE TABLE orders;\n",
	})

	rep, err := scan.Project(missingRoot)
	require.NoError(t, err)

	require.Len(t, rep.Issues, 1)
	assert.Contains(
		t,
		rep.Issues[0].Description,
		"__root directory",
	)

	withSchema := writeProject(t, map[string]string{
		"pom.xml": "<spring-modulith.version>1.3.0" +
			"</spring-modulith.version>\n",
		"src/main/resources/db/migration/__root/V0__create_events_schema.sql": "CREATE SCHEMA events;\n",
	})

	rep, err = scan.Project(withSchema)
	require.NoError(t, err)
	assert.Empty(t, rep.Issues)
}

func TestProject_missing_root(t *testing.T) {
	t.Parallel()

	_, err := scan.Project("/nonexistent/project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning project")
}

func TestCounts(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"pom.xml": `<dependencies>
  <artifactId>spring-boot-starter-web</artifactId>
  <artifactId>spring-boot-starter-aop</artifactId>
</dependencies>
`,
		"src/main/java/Client.java": "class Client { @Retryable void c() {} }\n",
	})

	rep, err := scan.Project(root)
	require.NoError(t, err)

	critical, warning, info := rep.Counts()
	assert.Equal(t, 2, critical)
	assert.Equal(t, 0, warning)
	assert.Equal(t, 1, info)
}
