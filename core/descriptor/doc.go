// Package descriptor loads generator descriptors: YAML files listing the
// templates a generation run applies to its model.
//
//	permission: rw-r--r--
//	templates:
//	  - name: entity
//	    factoryExpression: model.tables
//	    pathExpression: "src/${snakeCase(self.name)}.go"
//	    templateName: entity.go.tpl
//	    templateContext:
//	      - name: columns
//	        expression: length(self.columns)
//
// A descriptor named "project" is read as "project.yaml" from every template
// root. The least specific root provides the base descriptor; each more specific
// root overrides templates by name, can add new ones, and can switch a base
// template off with "exclude: true".
package descriptor
