package parser_test

import (
	"testing"
)

const startupSource = `using Microsoft.EntityFrameworkCore;
using static System.Math;

namespace Sample
{
    [ApiController]
    public class Startup : IStartup
    {
        public Startup(IConfiguration configuration) { Configuration = configuration; }

        public IConfiguration Configuration { get; }

        private readonly List<int> _ids = new() { 1, 2 };

        public void ConfigureServices(IServiceCollection services)
        {
            services.AddDbContext<AppDbContext>(options =>
                options.UseSqlite(Configuration.GetConnectionString("SampleDatabase")));
        }

        public void Configure(IApplicationBuilder app, IWebHostEnvironment env)
        {
            if (env.IsDevelopment())
            {
                app.UseDeveloperExceptionPage();
            }
            else app.UseHsts();

            using (var scope = app.ApplicationServices.CreateScope())
            {
                var ctx = scope.ServiceProvider.GetService<AppDbContext>();
                ctx?.Database.Migrate();
            }

            foreach (var id in _ids) { Console.WriteLine($"{id}: {id * 2}"); }
            try { Run(); } catch (Exception ex) { throw; } finally { }
        }

        private int Twice(int x) => x * 2;
    }

    public enum Mode { A, B = 2 }
}
`

func TestRoundTripSamples(t *testing.T) {
	samples := []string{
		"",
		startupSource,
		"var builder = WebApplication.CreateBuilder(args);\r\nvar app = builder.Build();\r\napp.Run();\r\n",
		"#if DEBUG\napp.Database.Migrate();\n#endif\n",
		"#if RELEASE\napp.Database.Migrate();\n#else\nfoo();\n#endif",
		") } ] stray ( tokens ; {",
		"x = a ? b : c; y = a?.b ?? c; z = t is int ? 1 : 2;",
		"await using var s = Open(); using var t = Open(); lock (o) { x++; }",
		"do { i--; } while (i > 0);",
		"var q = from x in xs where x > 1 select x;",
		"int[] a = { 1, 2 }; var b = new[] { 1 }; var c = new { A = 1 }; var d = [1, 2];",
		"Foo(out var x, ref y, name: z);",
		"var s = @\"multi\nline\";\n",
		"\uFEFF// bom\nclass A {}\n",
	}
	for _, src := range samples {
		parse(t, src, "DEBUG")
	}
}
