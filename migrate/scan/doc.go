// Package scan inspects Spring Boot projects for framework
// migration issues: renamed starters and Testcontainers artifacts in
// pom.xml, relocated imports and removed annotations in Java sources,
// moved configuration keys, and missing Spring Modulith event store
// setup. Findings carry a severity and a concrete suggestion and can
// be rendered as grouped text or JSON.
package scan
