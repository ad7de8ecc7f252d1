package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"efguard/internal/syntax"
	"efguard/internal/token"
)

func TestMemberAccessInvocation(t *testing.T) {
	tree := parse(t, "app.Database.Migrate();\n")
	inv := nodesOfKind(tree, syntax.Invocation)
	require.Len(t, inv, 1)
	require.Equal(t, "app.Database.Migrate()", tree.NodeText(inv[0]))

	ma := nodesOfKind(tree, syntax.MemberAccess)
	require.Equal(t, []string{"app.Database.Migrate", "app.Database"}, texts(tree, ma))

	stmt := tree.Parent(inv[0])
	require.Equal(t, syntax.ExpressionStatement, tree.Kind(stmt))
}

func TestConditionalAccessShape(t *testing.T) {
	tree := parse(t, "ctx?.Database.Migrate();")
	ca := nodesOfKind(tree, syntax.ConditionalAccess)
	require.Len(t, ca, 1)

	kids := tree.ChildNodes(ca[0])
	require.Len(t, kids, 2)
	require.Equal(t, "ctx", tree.NodeText(kids[0]))
	require.Equal(t, syntax.Invocation, tree.Kind(kids[1]))
	require.Equal(t, ".Database.Migrate()", tree.NodeText(kids[1]))

	mb := nodesOfKind(tree, syntax.MemberBinding)
	require.Equal(t, []string{".Database"}, texts(tree, mb))
}

func TestGenericInvocationAndLambda(t *testing.T) {
	src := `services.AddDbContext<AppDbContext>(options => options.UseSqlite(Configuration.GetConnectionString("SampleDatabase")));`
	tree := parse(t, src)

	gn := nodesOfKind(tree, syntax.GenericName)
	require.Equal(t, []string{"AddDbContext<AppDbContext>"}, texts(tree, gn))

	lambdas := nodesOfKind(tree, syntax.Lambda)
	require.Len(t, lambdas, 1)

	lits := nodesOfKind(tree, syntax.Literal)
	require.Equal(t, []string{`"SampleDatabase"`}, texts(tree, lits))
}

func TestComparisonIsNotGeneric(t *testing.T) {
	tree := parse(t, "var ok = a < b && c > d;")
	require.Empty(t, nodesOfKind(tree, syntax.GenericName))
	require.Len(t, nodesOfKind(tree, syntax.Binary), 3)
}

func TestNamedArgument(t *testing.T) {
	tree := parse(t, `cfg.GetConnectionString(name: "Db");`)
	args := nodesOfKind(tree, syntax.Argument)
	require.Len(t, args, 1)
	require.Equal(t, `name: "Db"`, tree.NodeText(args[0]))
	require.NotEqual(t, syntax.NoToken, tree.ChildToken(args[0], token.Colon))
}

func TestObjectCreationWithInitializer(t *testing.T) {
	tree := parse(t, `var o = new Options(1) { Name = "x", Retry = true };`)
	oc := nodesOfKind(tree, syntax.ObjectCreation)
	require.Len(t, oc, 1)
	require.Len(t, nodesOfKind(tree, syntax.Initializer), 1)
	require.Len(t, nodesOfKind(tree, syntax.Assignment), 2)
	require.Len(t, nodesOfKind(tree, syntax.LocalDeclaration), 1)
}

func TestConditionalExpression(t *testing.T) {
	tree := parse(t, "var v = flag ? a.B() : c;")
	require.Len(t, nodesOfKind(tree, syntax.Conditional), 1)
}

func TestElementAccess(t *testing.T) {
	tree := parse(t, `var s = cfg["ConnectionStrings:Db"];`)
	require.Len(t, nodesOfKind(tree, syntax.ElementAccess), 1)
	require.Len(t, nodesOfKind(tree, syntax.BracketedArgumentList), 1)
}
