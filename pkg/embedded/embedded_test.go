package embedded

import (
	"testing"
	"testing/fstest"
)

// 测试用的内存文件系统
// 真正的资源嵌入在项目根目录的 embed.go 中，这里只测试接口行为
func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/rulesets/demo.yaml":  &fstest.MapFile{Data: []byte("name: demo\n")},
		"data/rulesets/other.yaml": &fstest.MapFile{Data: []byte("name: other\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false for nil FS")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// 重置状态以避免影响其他测试
	Init(nil)
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	Init(nil)

	_, err := ReadFile("data/rulesets/demo.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	t.Run("正常读取", func(t *testing.T) {
		data, err := ReadFile("./data/rulesets/demo.yaml")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(data) != "name: demo\n" {
			t.Errorf("Unexpected content: %q", data)
		}
	})

	t.Run("未知前缀", func(t *testing.T) {
		if _, err := ReadFile("assets/demo.yaml"); err == nil {
			t.Error("Expected error for unknown prefix")
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := ReadFile("data/rulesets/missing.yaml"); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/rulesets/demo.yaml") {
		t.Error("demo.yaml should exist")
	}
	if Exists("data/rulesets/missing.yaml") {
		t.Error("missing.yaml should not exist")
	}

	matches, err := Glob("data/rulesets/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %v", matches)
	}
}
