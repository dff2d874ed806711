package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Version extraction patterns for Maven property
// blocks.
var (
	springBootVersionRe = regexp.MustCompile(
		`<spring-boot\.version>([\d.]+)`,
	)
	springModulithVersionRe = regexp.MustCompile(
		`<spring-modulith\.version>([\d.]+)`,
	)
	testcontainersVersionRe = regexp.MustCompile(
		`<testcontainers\.version>([\d.]+)`,
	)
)

// Project scans a Spring Boot project directory for
// framework migration issues and returns the findings.
func Project(root string) (*Report, error) {
	const errCtx = "scanning project"

	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	rep := newReport()

	if err := scanPom(root, rep); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := scanJavaFiles(root, rep); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := scanProperties(root, rep); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	scanFlyway(root, rep)

	return rep, nil
}

// scanPom extracts framework versions and flags renamed
// dependency coordinates in pom.xml. A missing pom.xml
// only logs a warning: Maven layout is expected but not
// mandatory.
func scanPom(root string, rep *Report) error {
	const errCtx = "scanning pom.xml"

	pomPath := filepath.Join(root, "pom.xml")

	raw, err := os.ReadFile(pomPath) //nolint:gosec // path from CLI flags
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn(
			"pom.xml not found, expected a Maven project",
			"root", root,
		)

		return nil
	}

	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	content := string(raw)
	lines := strings.Split(content, "\n")

	if m := springBootVersionRe.FindStringSubmatch(content); m != nil {
		rep.SpringBootVersion = m[1]
	}

	if m := springModulithVersionRe.FindStringSubmatch(content); m != nil {
		rep.SpringModulithVersion = m[1]
	}

	if m := testcontainersVersionRe.FindStringSubmatch(content); m != nil {
		rep.TestcontainersVersion = m[1]
	}

	for idx, line := range lines {
		for old, upd := range renamedStarters {
			if strings.Contains(
				line,
				"<artifactId>"+old+"</artifactId>",
			) {
				rep.add(
					"Spring Boot 4 - Dependencies",
					SeverityCritical,
					"pom.xml",
					idx+1,
					"Old starter: "+old,
					"Change to: "+upd+
						" (or use spring-boot-starter-classic"+
						" for gradual migration)",
				)
			}
		}

		if strings.Contains(
			line,
			"<artifactId>spring-security-test</artifactId>",
		) && strings.Contains(
			window(lines, idx),
			"<groupId>org.springframework.security</groupId>",
		) {
			rep.add(
				"Spring Boot 4 - Dependencies",
				SeverityCritical,
				"pom.xml",
				idx+1,
				"Old spring-security-test dependency",
				"Change to: spring-boot-starter-security-test",
			)
		}

		for _, artifact := range renamedContainerArtifacts {
			if strings.Contains(
				line,
				"<artifactId>"+artifact+"</artifactId>",
			) && strings.Contains(
				window(lines, idx),
				"<groupId>org.testcontainers</groupId>",
			) {
				rep.add(
					"Testcontainers 2.x - Dependencies",
					SeverityWarning,
					"pom.xml",
					idx+1,
					"Old Testcontainers artifact: "+artifact,
					"Change to: testcontainers-"+artifact,
				)
			}
		}
	}

	return nil
}

// window returns the lines surrounding index idx (two
// before through two after) joined together, used to
// check which groupId an artifactId belongs to.
func window(lines []string, idx int) string {
	lo := max(0, idx-2)
	hi := min(len(lines), idx+3)

	return strings.Join(lines[lo:hi], "\n")
}

// scanJavaFiles walks the project tree and scans every
// .java file.
func scanJavaFiles(root string, rep *Report) error {
	const errCtx = "scanning java files"

	err := filepath.WalkDir(
		root,
		func(pa string, de fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if de.IsDir() ||
				!strings.HasSuffix(de.Name(), ".java") {
				return nil
			}

			raw, readErr := os.ReadFile(pa) //nolint:gosec // paths from walk
			if readErr != nil {
				return readErr
			}

			rel, relErr := filepath.Rel(root, pa)
			if relErr != nil {
				return relErr
			}

			scanJavaFile(rep, rel, string(raw))

			return nil
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// scanJavaFile applies all Java-level migration rules
// to one source file.
//
//nolint:gocognit // flat rule-by-rule structure
func scanJavaFile(
	rep *Report,
	rel string,
	content string,
) {
	lines := strings.Split(content, "\n")

	for idx, line := range lines {
		lineNo := idx + 1
		commented := strings.HasPrefix(
			strings.TrimSpace(line), "//",
		)

		for old, upd := range RenamedTestAnnotations {
			if strings.Contains(line, old) && !commented {
				rep.add(
					"Spring Boot 4 - Test Annotations",
					SeverityCritical,
					rel,
					lineNo,
					"Old test annotation: "+old,
					"Change to: "+upd,
				)
			}
		}

		for old, upd := range RelocatedImports {
			if strings.Contains(line, "import "+old) {
				rep.add(
					"Spring Boot 4 - Package Relocations",
					SeverityCritical,
					rel,
					lineNo,
					"Old import: "+old,
					"Change to: "+upd,
				)
			}
		}

		for old, upd := range RelocatedContainerImports {
			if strings.Contains(line, "import "+old) {
				rep.add(
					"Testcontainers 2.x - Package Changes",
					SeverityCritical,
					rel,
					lineNo,
					"Old Testcontainers import: "+old,
					"Change to: "+upd,
				)
			}
		}

		if strings.Contains(
			line, "LocalStackContainer.Service",
		) {
			rep.add(
				"Testcontainers 2.x - API Changes",
				SeverityCritical,
				rel,
				lineNo,
				"LocalStackContainer.Service enum removed",
				"Remove .withServices() - services are now"+
					" auto-detected",
			)
		}

		// The resilience annotations are valid Spring
		// Boot 4 usage; surface them as informational
		// so AOP prerequisites get checked.
		if strings.Contains(
			line, "org.springframework.resilience",
		) {
			rep.add(
				"Spring Boot 4 - Retry/Resilience",
				SeverityInfo,
				rel,
				lineNo,
				"Using org.springframework.resilience"+
					" annotations",
				"Ensure AOP support; if using Spring Retry"+
					" directly, use org.springframework.retry"+
					" + explicit version",
			)
		}

		if strings.Contains(line, "@Retryable") && !commented {
			rep.add(
				"Spring Boot 4 - Spring Retry",
				SeverityInfo,
				rel,
				lineNo,
				"Using @Retryable",
				"Ensure spring-retry dependency with"+
					" explicit version +"+
					" spring-boot-starter-aspectj",
			)
		}

		for old, upd := range renamedJacksonClasses {
			if strings.Contains(line, old) && !commented {
				rep.add(
					"Spring Boot 4 - Jackson 3",
					SeverityCritical,
					rel,
					lineNo,
					"Old Jackson 2 class: "+old,
					"Change to Jackson 3: "+upd,
				)
			}
		}

		if strings.Contains(line, "PostgreSQLContainer<?>") ||
			strings.Contains(line, "MySQLContainer<?>") {
			rep.add(
				"Testcontainers 2.x - Generic Types",
				SeverityWarning,
				rel,
				lineNo,
				"Generic type in Testcontainers container",
				"Remove generic type:"+
					" PostgreSQLContainer<?> ->"+
					" PostgreSQLContainer",
			)
		}

		if strings.Contains(line, "getEndpointOverride(") &&
			strings.Contains(line, "Service") {
			rep.add(
				"Testcontainers 2.x - LocalStack API",
				SeverityCritical,
				rel,
				lineNo,
				"getEndpointOverride(Service) deprecated",
				"Change to: getEndpoint()",
			)
		}
	}
}

// scanProperties checks application.properties and
// application.yml for relocated configuration keys and
// missing Spring Modulith event store settings.
func scanProperties(root string, rep *Report) error {
	const errCtx = "scanning properties"

	candidates := []string{
		"src/main/resources/application.properties",
		"src/main/resources/application.yml",
	}

	for _, rel := range candidates {
		raw, err := os.ReadFile( //nolint:gosec // path from CLI flags
			filepath.Join(root, rel),
		)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		scanPropertiesFile(rep, rel, string(raw))
	}

	return nil
}

// scanPropertiesFile applies configuration rules to one
// properties or yml file.
func scanPropertiesFile(
	rep *Report,
	rel string,
	content string,
) {
	lines := strings.Split(content, "\n")

	for idx, line := range lines {
		if strings.HasPrefix(
			strings.TrimSpace(line), "#",
		) {
			continue
		}

		for _, old := range oldJacksonProperties {
			if strings.Contains(line, old) {
				rep.add(
					"Spring Boot 4 - Configuration",
					SeverityWarning,
					rel,
					idx+1,
					"Old Jackson property: "+
						strings.TrimSpace(line),
					"Change spring.jackson.* to"+
						" spring.jackson.json.*",
				)
			}
		}
	}

	if rep.usesModulith() && !strings.Contains(
		content, "spring.modulith.events.jdbc.schema",
	) {
		rep.add(
			"Spring Modulith 2.0 - Configuration",
			SeverityCritical,
			rel,
			0,
			"Missing Spring Modulith event store"+
				" configuration",
			"Add: spring.modulith.events.jdbc.schema=events",
		)
	}
}

// scanFlyway checks that projects using Spring Modulith
// carry the events schema migration under __root.
func scanFlyway(root string, rep *Report) {
	if !rep.usesModulith() {
		return
	}

	migrationDir := filepath.Join(
		root, "src/main/resources/db/migration",
	)

	if _, err := os.Stat(migrationDir); err != nil {
		return
	}

	rootDir := filepath.Join(migrationDir, "__root")

	if _, err := os.Stat(rootDir); err != nil {
		rep.add(
			"Spring Modulith 2.0 - Database",
			SeverityCritical,
			"src/main/resources/db/migration/",
			0,
			"Missing __root directory for events schema"+
				" migration",
			"Create: __root/V0__create_events_schema.sql",
		)

		return
	}

	matches, _ := filepath.Glob(
		filepath.Join(rootDir, "V0__*events*.sql"),
	)

	if len(matches) == 0 {
		rep.add(
			"Spring Modulith 2.0 - Database",
			SeverityCritical,
			"src/main/resources/db/migration/__root/",
			0,
			"Missing events schema migration",
			"Create: V0__create_events_schema.sql"+
				" with 'CREATE SCHEMA events;'",
		)
	}
}
